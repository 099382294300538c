package config

import (
	"flag"
	"strings"
	"time"
)

// LayerList holds the ordered configuration layer files given on the command
// line. It implements the flag.Value interface so the same flag can be
// repeated or given as a comma-separated list.
type LayerList []string

// ParseFlags parses all settings flags.
//
// Flags:
//
//	-l/-layers ordered layer files (repeatable, comma-separated)
//	-root project root directory (defaults to the first layer's directory)
//	-cache-dir local artifact cache directory
//	-remote-url base URL of the artifact source
//	-request-timeout remote request timeout (e.g., "30s", "1m")
//	-c/-config json file path with settings
//
// Remaining positional arguments are appended to the layer list in order,
// so `dialog-config base.yaml site.yaml` works without any flags.
func ParseFlags() *Settings {
	var layers LayerList
	var projectRoot string
	var cacheDir string
	var remoteURL string
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.Var(&layers, "l", "Ordered configuration layer files")
	flag.Var(&layers, "layers", "Ordered configuration layer files (alias)")
	flag.StringVar(&projectRoot, "root", "", "Project root directory")
	flag.StringVar(&cacheDir, "cache-dir", "", "Artifact cache directory")
	flag.StringVar(&remoteURL, "remote-url", "", "Artifact source base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON settings file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON settings file path (alias)")

	flag.Parse()

	layers = append(layers, flag.Args()...)

	return &Settings{
		Pipeline: Pipeline{
			Layers:      layers,
			ProjectRoot: projectRoot,
		},
		Artifacts: Artifacts{
			CacheDir:       cacheDir,
			RemoteURL:      remoteURL,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the layer files joined by commas.
func (l *LayerList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one or more layer files to the list. A single argument may
// name several files separated by commas; empty entries are skipped.
func (l *LayerList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

package config

import (
	"os"
	"path/filepath"
	"time"
)

// Settings is the top-level settings container for the go-dialog-config
// resolver process. It aggregates all sub-settings and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Settings struct {
	// Pipeline holds the inputs of configuration resolution: the ordered
	// layer files and the project root.
	Pipeline Pipeline `envPrefix:"PIPELINE_"`

	// Artifacts holds the artifact cache and remote source settings used by
	// online-update resolution.
	Artifacts Artifacts `envPrefix:"ARTIFACTS_"`

	// JSONFilePath is the optional path to a JSON settings file. When
	// non-empty, the file is parsed and merged after the values already
	// loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Pipeline holds the inputs of a single configuration resolution run.
type Pipeline struct {
	// Layers is the ordered list of configuration layer files. The first
	// entry is the base configuration; every following entry is an override
	// layer that wins on conflicts with the layers before it.
	// Env: PIPELINE_LAYERS (comma-separated)
	Layers []string `env:"LAYERS" envSeparator:","`

	// ProjectRoot is the absolute base directory against which
	// project-relative path tokens are resolved. When empty, the directory
	// of the first layer file is used.
	// Env: PIPELINE_PROJECT_ROOT
	ProjectRoot string `env:"PROJECT_ROOT"`
}

// Artifacts holds settings for the online-update artifact cache.
type Artifacts struct {
	// CacheDir is the local directory holding one cached file per artifact
	// name. Created on demand.
	// Env: ARTIFACTS_CACHE_DIR
	CacheDir string `env:"CACHE_DIR"`

	// RemoteURL is the base URL of the artifact source (e.g.
	// "https://models.example.org"). When empty, resolution of artifact
	// references degrades to cache-only operation.
	// Env: ARTIFACTS_REMOTE_URL
	RemoteURL string `env:"REMOTE_URL"`

	// RequestTimeout is the maximum duration of a single remote request
	// (e.g. "30s", "1m"). The artifact client applies its own default when
	// zero.
	// Env: ARTIFACTS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetSettings loads, merges, and validates the resolver process settings
// from all available sources in the following priority order (earlier
// sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *Settings or an error if any source fails to
// load or the final settings fail validation.
func GetSettings() (*Settings, error) {
	return newSettingsBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// applyDefaults fills the settings no source provided. Only the artifact
// cache directory has a default: a "dialog-config/artifacts" directory under
// the user cache dir.
func (s *Settings) applyDefaults() {
	if s.Artifacts.CacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			s.Artifacts.CacheDir = filepath.Join(base, "dialog-config", "artifacts")
		}
	}
}

// validate checks that the final merged [Settings] satisfy the invariants
// required before a resolution run can start.
func (s *Settings) validate() error {
	if len(s.Pipeline.Layers) == 0 {
		return ErrNoLayers
	}

	if s.Artifacts.RemoteURL != "" && s.Artifacts.CacheDir == "" {
		return ErrInvalidArtifactSettings
	}

	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONSettings mirrors [Settings] with JSON field tags for the
// optional settings file form.
type StructuredJSONSettings struct {
	Pipeline struct {
		Layers      []string `json:"layers"`
		ProjectRoot string   `json:"project_root"`
	} `json:"pipeline,omitempty"`

	Artifacts struct {
		CacheDir       string   `json:"cache_dir"`
		RemoteURL      string   `json:"remote_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"artifacts,omitempty"`
}

func parseJSON(jsonFilePath string) (*Settings, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONSettings
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json settings: %w", err)
	}

	return &Settings{
		Pipeline: Pipeline{
			Layers:      jsonCfg.Pipeline.Layers,
			ProjectRoot: jsonCfg.Pipeline.ProjectRoot,
		},
		Artifacts: Artifacts{
			CacheDir:       jsonCfg.Artifacts.CacheDir,
			RemoteURL:      jsonCfg.Artifacts.RemoteURL,
			RequestTimeout: time.Duration(jsonCfg.Artifacts.RequestTimeout),
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

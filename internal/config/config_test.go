// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONSettings(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "settings-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── builder ───────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no sources fails
// validation: there are no layers to resolve.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newSettingsBuilder().build()
	assert.ErrorIs(t, err, ErrNoLayers)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil settings.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newSettingsBuilder()
	b.err = assert.AnError

	settings, err := b.build()
	assert.Nil(t, settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleSources verifies that fields from multiple sources
// are merged, earlier non-zero fields winning.
func TestBuild_MergesMultipleSources(t *testing.T) {
	b := newSettingsBuilder()
	b.configs = append(b.configs,
		&Settings{Pipeline: Pipeline{Layers: []string{"base.yaml"}}},
		&Settings{Pipeline: Pipeline{Layers: []string{"ignored.yaml"}, ProjectRoot: "/srv/app"}},
	)

	settings, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, []string{"base.yaml"}, settings.Pipeline.Layers)
	assert.Equal(t, "/srv/app", settings.Pipeline.ProjectRoot)
}

// ── env source ────────────────────────────────────────────────────────────────

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up
// via the env/envPrefix tags.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("PIPELINE_LAYERS", "base.yaml,site.yaml")
	t.Setenv("PIPELINE_PROJECT_ROOT", "/srv/app")
	t.Setenv("ARTIFACTS_REMOTE_URL", "https://models.example.org")
	t.Setenv("ARTIFACTS_REQUEST_TIMEOUT", "30s")

	b := newSettingsBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)

	got := b.configs[0]
	assert.Equal(t, []string{"base.yaml", "site.yaml"}, got.Pipeline.Layers)
	assert.Equal(t, "/srv/app", got.Pipeline.ProjectRoot)
	assert.Equal(t, "https://models.example.org", got.Artifacts.RemoteURL)
	assert.Equal(t, 30*time.Second, got.Artifacts.RequestTimeout)
}

// ── json source ───────────────────────────────────────────────────────────────

// TestParseJSON verifies decoding of the JSON settings file form, including
// duration strings.
func TestParseJSON(t *testing.T) {
	path := writeTempJSONSettings(t, map[string]any{
		"pipeline": map[string]any{
			"layers":       []string{"base.yaml"},
			"project_root": "/srv/app",
		},
		"artifacts": map[string]any{
			"cache_dir":       "/var/cache/dc",
			"remote_url":      "https://models.example.org",
			"request_timeout": "1m",
		},
	})

	settings, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"base.yaml"}, settings.Pipeline.Layers)
	assert.Equal(t, "/var/cache/dc", settings.Artifacts.CacheDir)
	assert.Equal(t, time.Minute, settings.Artifacts.RequestTimeout)
}

// TestParseJSON_BadFile verifies the error paths for missing and invalid
// files.
func TestParseJSON_BadFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/settings.json")
	assert.Error(t, err)

	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = parseJSON(f.Name())
	assert.Error(t, err)
}

// ── defaults and validation ───────────────────────────────────────────────────

// TestApplyDefaults_CacheDir verifies that an unset cache directory gets a
// user-cache-dir default while explicit values are kept.
func TestApplyDefaults_CacheDir(t *testing.T) {
	s := &Settings{}
	s.applyDefaults()
	assert.NotEmpty(t, s.Artifacts.CacheDir)

	explicit := &Settings{Artifacts: Artifacts{CacheDir: "/var/cache/dc"}}
	explicit.applyDefaults()
	assert.Equal(t, "/var/cache/dc", explicit.Artifacts.CacheDir)
}

// TestValidate_RequiresLayers verifies the layer invariant.
func TestValidate_RequiresLayers(t *testing.T) {
	s := &Settings{}
	assert.ErrorIs(t, s.validate(), ErrNoLayers)

	s.Pipeline.Layers = []string{"base.yaml"}
	s.Artifacts.CacheDir = "/var/cache/dc"
	assert.NoError(t, s.validate())
}

// ── flag value types ──────────────────────────────────────────────────────────

// TestLayerList_SetAndString verifies the repeatable, comma-separated layer
// flag behaviour.
func TestLayerList_SetAndString(t *testing.T) {
	var l LayerList
	require.NoError(t, l.Set("base.yaml"))
	require.NoError(t, l.Set("site.yaml, extra.yaml"))
	require.NoError(t, l.Set(""))

	assert.Equal(t, LayerList{"base.yaml", "site.yaml", "extra.yaml"}, l)
	assert.Equal(t, "base.yaml,site.yaml,extra.yaml", l.String())
}

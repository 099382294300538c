package config

import "errors"

// Validation errors returned by [Settings.validate] when required settings
// groups are incomplete or inconsistent.
var (
	// ErrNoLayers indicates that no configuration layer files were supplied
	// by any settings source.
	ErrNoLayers = errors.New("no configuration layers given")
	// ErrInvalidArtifactSettings indicates inconsistent artifact settings
	// (for example, a remote URL without a cache directory).
	ErrInvalidArtifactSettings = errors.New("invalid artifact settings")
)

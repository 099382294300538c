// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

package models

// ArtifactRef is a scalar configuration value naming a remotely versioned
// artifact (for example a trained acoustic model). It marks the value as
// online-updatable: resolution replaces it with the absolute path of a
// locally cached copy, fetching or refreshing that copy first.
type ArtifactRef string

// Name returns the logical artifact name carried by the reference.
func (r ArtifactRef) Name() string {
	return string(r)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

// Package paths rewrites project-relative path tokens embedded in
// configuration values into absolute filesystem paths.
//
// Resolution is pure string substitution: the marker is syntactic, no file
// needs to exist at the resulting path, and no I/O is performed. Whether the
// path is usable is the consuming component's concern.
package paths

import (
	"path/filepath"
	"strings"
)

// Marker is the project-root token recognised inside string configuration
// values, e.g. "{cfg_abs_path}/data/db.py".
const Marker = "{cfg_abs_path}"

// Resolve replaces every occurrence of [Marker] in value with projectRoot and
// normalises the result. A value without the marker is returned unchanged,
// which makes Resolve idempotent: resolving an already-resolved value is a
// no-op.
func Resolve(value, projectRoot string) string {
	if !strings.Contains(value, Marker) {
		return value
	}
	return filepath.Clean(strings.ReplaceAll(value, Marker, projectRoot))
}

// ProjectPath returns the absolute path of a project-relative suffix without
// requiring the marker token in the input. For equivalent inputs it agrees
// with [Resolve]: ProjectPath("x", root) == Resolve(Marker+"/x", root).
func ProjectPath(suffix, projectRoot string) string {
	return filepath.Join(projectRoot, suffix)
}

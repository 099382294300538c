// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

package models

import "strings"

// Path locates one value inside a configuration tree, from the root down.
// It is carried in error messages so an operator can find the offending
// entry without guessing.
type Path []string

// Child returns a new Path extended by key. The receiver is never mutated;
// the returned path owns its own backing array.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Key returns the last element of the path — the key under which the value
// sits in its enclosing tree — or "" for the root path.
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// String renders the path in dotted form, e.g. "recognition.google.model".
// The root path renders as "(root)".
func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	return strings.Join(p, ".")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

package models

import "sort"

// Tree is one configuration tree: an ordered-by-key mapping of string keys to
// values. A value is one of:
//
//   - a scalar: string, bool, int, int64 or float64;
//   - a nested Tree;
//   - a list ([]any) of any of the above;
//   - an [ArtifactRef] naming a remotely versioned artifact.
//
// Trees are built once by a loader (or by merging) and are treated as
// immutable afterwards; every transformation returns a fresh tree and leaves
// its input untouched.
type Tree map[string]any

// TypeKey is the key that marks a subtree as a variant selector. A subtree
// containing TypeKey with a string value declares one active implementation
// among the sibling keys of the same subtree.
const TypeKey = "type"

// Keys returns the tree's keys in lexicographic order. Go maps carry no
// declaration order, so lexicographic order is the stable traversal order
// used everywhere a deterministic walk is required.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the tree. Nested trees and lists are copied
// recursively; scalar values and artifact references are copied by value.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = CloneValue(v)
	}
	return out
}

// IsSelector reports whether the tree is a variant selector, i.e. whether it
// carries a string-valued TypeKey entry.
func (t Tree) IsSelector() bool {
	v, ok := t[TypeKey]
	if !ok {
		return false
	}
	_, isString := v.(string)
	return isString
}

// Walk visits every value of the tree depth-first, keys in lexicographic
// order, calling fn with the value's path. Nested trees are visited before
// their children. Walk stops at the first error returned by fn and returns it.
func (t Tree) Walk(fn func(path Path, value any) error) error {
	return walk(t, nil, fn)
}

func walk(t Tree, path Path, fn func(Path, any) error) error {
	for _, k := range t.Keys() {
		p := path.Child(k)
		v := t[k]
		if err := fn(p, v); err != nil {
			return err
		}
		if sub, ok := AsTree(v); ok {
			if err := walk(sub, p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// AsTree converts v to a Tree when it is one. Both Tree and the raw
// map[string]any produced by generic decoders are accepted, so callers do not
// depend on how a particular loader typed its nested mappings.
func AsTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}

// CloneValue deep-copies a single tree value, whatever its kind. Scalars and
// artifact references are returned as-is; trees and lists are copied
// recursively.
func CloneValue(v any) any {
	switch val := v.(type) {
	case Tree:
		return val.Clone()
	case map[string]any:
		return Tree(val).Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return val
	}
}

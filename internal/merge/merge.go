// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

// Package merge combines an ordered sequence of configuration layers into a
// single tree. Merge order is the only precedence mechanism: a base layer
// comes first, override layers loaded after it win on every conflict.
package merge

import (
	"fmt"

	"github.com/mstepanek/go-dialog-config/models"
)

// Merge deep-merges layers in order into one fresh tree.
//
// The merge is key-wise: when a key is present in several layers and both
// values are nested trees, the trees are merged recursively; in every other
// case the value from the later layer wins outright, including when the two
// layers disagree on shape (scalar in one, tree in another). Keys absent from
// later layers are inherited unchanged from earlier ones.
//
// Inputs are never mutated; the result shares no memory with any layer.
// Merge fails only with [ErrMalformedLayer] when a layer is not a well-formed
// tree — never because of conflicting values.
func Merge(layers ...models.Tree) (models.Tree, error) {
	merged := models.Tree{}
	for i, layer := range layers {
		if layer == nil {
			return nil, fmt.Errorf("layer %d: %w: layer is nil", i, ErrMalformedLayer)
		}
		if err := checkShape(layer, nil); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		mergeInto(merged, layer)
	}
	return merged, nil
}

// mergeInto folds src into dst. dst is fully owned by the merge (every value
// stored into it is a clone), so recursing into its subtrees is safe.
func mergeInto(dst, src models.Tree) {
	for k, v := range src {
		if sub, ok := models.AsTree(v); ok {
			if existing, ok := models.AsTree(dst[k]); ok {
				mergeInto(existing, sub)
				continue
			}
			dst[k] = sub.Clone()
			continue
		}
		dst[k] = models.CloneValue(v)
	}
}

// checkShape verifies that every value in the layer is of a supported kind:
// scalar, nested tree, list, or artifact reference.
func checkShape(t models.Tree, path models.Path) error {
	for _, k := range t.Keys() {
		if err := checkValue(t[k], path.Child(k)); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(v any, path models.Path) error {
	switch val := v.(type) {
	case nil, string, bool, int, int64, float64, models.ArtifactRef:
		return nil
	case []any:
		for i, item := range val {
			if err := checkValue(item, path.Child(fmt.Sprintf("[%d]", i))); err != nil {
				return err
			}
		}
		return nil
	default:
		if sub, ok := models.AsTree(v); ok {
			return checkShape(sub, path)
		}
		return fmt.Errorf("%w: value at %s has unsupported type %T", ErrMalformedLayer, path, v)
	}
}

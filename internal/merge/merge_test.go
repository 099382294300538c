// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstepanek/go-dialog-config/models"
)

// ── basic precedence ──────────────────────────────────────────────────────────

// TestMerge_LaterLayerWinsOnScalar verifies the core override rule: when two
// layers define the same scalar key, the later layer's value wins outright.
func TestMerge_LaterLayerWinsOnScalar(t *testing.T) {
	base := models.Tree{"limits": models.Tree{"max_turns": 120}}
	override := models.Tree{"limits": models.Tree{"max_turns": 90}}

	merged, err := Merge(base, override)
	require.NoError(t, err)

	limits, ok := models.AsTree(merged["limits"])
	require.True(t, ok)
	assert.Equal(t, 90, limits["max_turns"])
}

// TestMerge_AbsentKeysInherited verifies that keys absent from later layers
// are inherited unchanged from earlier ones.
func TestMerge_AbsentKeysInherited(t *testing.T) {
	base := models.Tree{
		"logging": models.Tree{"level": "debug"},
		"name":    "alpha",
	}
	override := models.Tree{"name": "beta"}

	merged, err := Merge(base, override)
	require.NoError(t, err)

	assert.Equal(t, "beta", merged["name"])
	logging, ok := models.AsTree(merged["logging"])
	require.True(t, ok)
	assert.Equal(t, "debug", logging["level"])
}

// TestMerge_DeepMergeRecursesIntoTrees verifies that nested trees present in
// both layers are merged key-wise rather than replaced wholesale.
func TestMerge_DeepMergeRecursesIntoTrees(t *testing.T) {
	base := models.Tree{
		"recognition": models.Tree{
			"sample_rate": 16000,
			"language":    "en",
		},
	}
	override := models.Tree{
		"recognition": models.Tree{
			"language": "cs",
		},
	}

	merged, err := Merge(base, override)
	require.NoError(t, err)

	rec, ok := models.AsTree(merged["recognition"])
	require.True(t, ok)
	assert.Equal(t, 16000, rec["sample_rate"])
	assert.Equal(t, "cs", rec["language"])
}

// ── shape conflicts ───────────────────────────────────────────────────────────

// TestMerge_ShapeConflicts verifies that conflicting shapes at the same key
// resolve by later-layer-wins with no attempt to reconcile: a later layer
// fully owns a subtree it redefines, in either direction.
func TestMerge_ShapeConflicts(t *testing.T) {
	tests := []struct {
		name string
		base models.Tree
		over models.Tree
		want any
	}{
		{
			name: "ScalarReplacesTree",
			base: models.Tree{"k": models.Tree{"nested": 1}},
			over: models.Tree{"k": "flat"},
			want: "flat",
		},
		{
			name: "TreeReplacesScalar",
			base: models.Tree{"k": "flat"},
			over: models.Tree{"k": models.Tree{"nested": 1}},
			want: models.Tree{"nested": 1},
		},
		{
			name: "ListReplacesList",
			base: models.Tree{"k": []any{1, 2, 3}},
			over: models.Tree{"k": []any{4}},
			want: []any{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := Merge(tt.base, tt.over)
			require.NoError(t, err)
			assert.Equal(t, tt.want, merged["k"])
		})
	}
}

// ── algebraic properties ──────────────────────────────────────────────────────

// TestMerge_AssociativeInOverrideSense verifies that merging [A, B, C] equals
// merging [merge([A, B]), C].
func TestMerge_AssociativeInOverrideSense(t *testing.T) {
	a := models.Tree{"x": models.Tree{"p": 1, "q": "a"}, "y": true}
	b := models.Tree{"x": models.Tree{"q": "b"}, "z": 3.5}
	c := models.Tree{"x": models.Tree{"p": 2}, "y": false}

	all, err := Merge(a, b, c)
	require.NoError(t, err)

	ab, err := Merge(a, b)
	require.NoError(t, err)
	staged, err := Merge(ab, c)
	require.NoError(t, err)

	assert.Equal(t, staged, all)
}

// TestMerge_InputsNeverMutated verifies that merge produces a new tree and
// leaves every input layer untouched.
func TestMerge_InputsNeverMutated(t *testing.T) {
	base := models.Tree{"a": models.Tree{"b": 1}}
	override := models.Tree{"a": models.Tree{"c": 2}}
	baseCopy := base.Clone()
	overrideCopy := override.Clone()

	merged, err := Merge(base, override)
	require.NoError(t, err)

	assert.Equal(t, baseCopy, base)
	assert.Equal(t, overrideCopy, override)

	// Mutating the result must not leak into the inputs either.
	sub, _ := models.AsTree(merged["a"])
	sub["b"] = 99
	assert.Equal(t, baseCopy, base)
}

// TestMerge_SingleLayer verifies that merging one layer yields an equal but
// distinct tree.
func TestMerge_SingleLayer(t *testing.T) {
	layer := models.Tree{"k": models.Tree{"n": 1}}

	merged, err := Merge(layer)
	require.NoError(t, err)
	assert.Equal(t, layer, merged)

	sub, _ := models.AsTree(merged["k"])
	sub["n"] = 2
	assert.Equal(t, 1, layer["k"].(models.Tree)["n"])
}

// ── malformed layers ──────────────────────────────────────────────────────────

// TestMerge_MalformedLayer verifies that a layer carrying a value of an
// unsupported kind fails with ErrMalformedLayer, and that the error names
// the layer index and the path of the offending value.
func TestMerge_MalformedLayer(t *testing.T) {
	good := models.Tree{"k": 1}
	bad := models.Tree{"outer": models.Tree{"inner": func() {}}}

	merged, err := Merge(good, bad)
	assert.Nil(t, merged)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedLayer)
	assert.Contains(t, err.Error(), "layer 1")
	assert.Contains(t, err.Error(), "outer.inner")
}

// TestMerge_NilLayer verifies that a nil layer is rejected as malformed.
func TestMerge_NilLayer(t *testing.T) {
	_, err := Merge(models.Tree{"k": 1}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedLayer)
}

// TestMerge_NoLayers verifies that merging nothing yields an empty tree.
func TestMerge_NoLayers(t *testing.T) {
	merged, err := Merge()
	require.NoError(t, err)
	assert.Equal(t, models.Tree{}, merged)
}

// TestMerge_ArtifactRefsSurvive verifies that artifact references pass
// through the merge untouched and can be overridden like any scalar.
func TestMerge_ArtifactRefsSurvive(t *testing.T) {
	base := models.Tree{"model": models.ArtifactRef("am-v1")}
	override := models.Tree{"model": models.ArtifactRef("am-v2")}

	merged, err := Merge(base, override)
	require.NoError(t, err)
	assert.Equal(t, models.ArtifactRef("am-v2"), merged["model"])
}

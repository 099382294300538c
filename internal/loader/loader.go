// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

// Package loader reads declarative YAML layer files into configuration
// trees. Loading is a local, in-process operation at startup; the loader
// never executes logic from a layer file, it only decodes data.
//
// One YAML extension is recognised: a scalar tagged "!artifact" becomes a
// [models.ArtifactRef], marking the value as online-updatable:
//
//	recognition:
//	  type: kaldi
//	  kaldi:
//	    acoustic_model: !artifact kaldi-am-2026-03
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mstepanek/go-dialog-config/models"
)

// artifactTag marks a YAML scalar as an artifact reference.
const artifactTag = "!artifact"

// Load reads the given layer files in order and returns one tree per file.
// The order of the result matches the order of the arguments, which is the
// merge order.
func Load(filePaths ...string) ([]models.Tree, error) {
	layers := make([]models.Tree, 0, len(filePaths))
	for _, p := range filePaths {
		layer, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// LoadFile reads a single YAML layer file. An empty file yields an empty
// (but valid) layer; a non-mapping top level is an error.
func LoadFile(path string) (models.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layer %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("layer %s: %w", path, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return models.Tree{}, nil
	}

	v, err := decodeNode(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("layer %s: %w", path, err)
	}
	tree, ok := models.AsTree(v)
	if !ok {
		return nil, fmt.Errorf("layer %s: top level must be a mapping, got %T", path, v)
	}
	return tree, nil
}

// ProjectRoot derives the project root from the primary (first) layer file:
// the absolute path of the directory containing it.
func ProjectRoot(primaryLayer string) (string, error) {
	abs, err := filepath.Abs(primaryLayer)
	if err != nil {
		return "", fmt.Errorf("project root of %s: %w", primaryLayer, err)
	}
	return filepath.Dir(abs), nil
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		tree := make(models.Tree, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: mapping key must be a string: %w", keyNode.Line, err)
			}
			val, err := decodeNode(valNode)
			if err != nil {
				return nil, err
			}
			tree[key] = val
		}
		return tree, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil

	case yaml.ScalarNode:
		if n.Tag == artifactTag {
			return models.ArtifactRef(n.Value), nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil

	case yaml.AliasNode:
		return decodeNode(n.Alias)

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

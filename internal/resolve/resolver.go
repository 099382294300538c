// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

// Package resolve turns a merged configuration tree into the final resolved
// tree consumed by the pipeline bootstrap.
//
// The walk is deterministic (depth-first, keys in lexicographic order) and
// all-or-nothing: either every path token is rewritten, every artifact
// reference replaced by a local path, and every variant selector reduced to
// its chosen variant's settings — or the call fails with the first error in
// stable traversal order and no partially resolved tree is exposed.
//
// The only I/O happens when artifact references are fetched; fetches for
// distinct names run in parallel since they are independent. Everything else
// is pure tree transformation.
package resolve

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mstepanek/go-dialog-config/internal/logger"
	"github.com/mstepanek/go-dialog-config/internal/paths"
	"github.com/mstepanek/go-dialog-config/internal/registry"
	"github.com/mstepanek/go-dialog-config/models"
)

// Resolver resolves merged configuration trees. It is stateless across calls
// and safe for concurrent use as long as its collaborators are.
type Resolver struct {
	projectRoot string
	artifacts   Store
	registry    *registry.Registry
	log         *logger.Logger
}

// pendingRef is one artifact reference found during the pure pass, kept in
// traversal order so fetch errors are reported deterministically.
type pendingRef struct {
	path models.Path
	name string
}

// New constructs a Resolver. projectRoot is the absolute base directory for
// path-token substitution, artifacts serves online-updatable values, and reg
// validates variant selectors.
func New(projectRoot string, artifacts Store, reg *registry.Registry, log *logger.Logger) *Resolver {
	return &Resolver{
		projectRoot: projectRoot,
		artifacts:   artifacts,
		registry:    reg,
		log:         log,
	}
}

// Resolve walks the merged tree and produces the final resolved tree.
//
// The work happens in three phases:
//  1. a pure pass that validates and reduces variant selectors, rewrites
//     path tokens, and records artifact references in traversal order —
//     references inside variants that were not selected are discarded here
//     and never fetched;
//  2. parallel fetches for the distinct artifact names that survived;
//  3. a pure substitution of the fetched local paths.
//
// The merged input is never mutated. On any failure the first error in
// stable traversal order is returned (validation errors, arising in the pure
// pass, always precede fetch errors) and no tree is returned.
func (r *Resolver) Resolve(ctx context.Context, merged models.Tree) (models.Tree, error) {
	var refs []pendingRef
	reduced, err := r.reduceTree(merged, nil, &refs)
	if err != nil {
		return nil, err
	}

	local, err := r.fetchAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	substitute(reduced, local)

	r.log.Debug().Int("artifacts", len(local)).Msg("configuration resolved")
	return reduced, nil
}

// reduceTree is the pure pass over one subtree. The returned tree is fresh.
func (r *Resolver) reduceTree(t models.Tree, path models.Path, refs *[]pendingRef) (models.Tree, error) {
	out := make(models.Tree, len(t))
	for _, k := range t.Keys() {
		v, err := r.reduceValue(t[k], path.Child(k), refs)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (r *Resolver) reduceValue(v any, path models.Path, refs *[]pendingRef) (any, error) {
	switch val := v.(type) {
	case string:
		return paths.Resolve(val, r.projectRoot), nil

	case models.ArtifactRef:
		*refs = append(*refs, pendingRef{path: path, name: val.Name()})
		return val, nil

	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			reducedItem, err := r.reduceValue(item, path.Child(fmt.Sprintf("[%d]", i)), refs)
			if err != nil {
				return nil, err
			}
			out[i] = reducedItem
		}
		return out, nil

	default:
		sub, ok := models.AsTree(v)
		if !ok {
			return val, nil
		}
		if sub.IsSelector() {
			return r.reduceSelector(sub, path, refs)
		}
		return r.reduceTree(sub, path, refs)
	}
}

// reduceSelector validates a variant selector and replaces it with the
// chosen variant's settings subtree. Settings of the variants that were not
// selected are dropped from the result; they remain inspectable in the
// pre-resolution merged tree for diagnostics.
func (r *Resolver) reduceSelector(sel models.Tree, path models.Path, refs *[]pendingRef) (any, error) {
	componentKey := path.Key()
	if err := r.registry.Validate(componentKey, sel); err != nil {
		return nil, fmt.Errorf("at %s: %w", path, err)
	}

	variant := sel[models.TypeKey].(string)
	chosen, _ := models.AsTree(sel[variant])
	r.log.Debug().Str("component", componentKey).Str("variant", variant).
		Msg("variant selected")

	// The chosen settings may themselves contain selectors, path tokens, or
	// artifact references.
	return r.reduceTree(chosen, path, refs)
}

// fetchAll resolves the distinct artifact names in parallel and returns a
// name -> local path map. Every fetch is allowed to run to completion so the
// cache benefits even when another fetch fails; the reported error is the
// one belonging to the earliest reference in traversal order.
func (r *Resolver) fetchAll(ctx context.Context, refs []pendingRef) (map[string]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	local := make(map[string]string, len(refs))
	fetchErrs := make(map[string]error, len(refs))
	seen := make(map[string]struct{}, len(refs))

	var mu sync.Mutex
	var g errgroup.Group

	for _, ref := range refs {
		if _, ok := seen[ref.name]; ok {
			continue
		}
		seen[ref.name] = struct{}{}

		name := ref.name
		g.Go(func() error {
			path, err := r.artifacts.EnsureLocal(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fetchErrs[name] = err
				return nil
			}
			local[name] = path
			return nil
		})
	}
	_ = g.Wait()

	for _, ref := range refs {
		if err := fetchErrs[ref.name]; err != nil {
			return nil, fmt.Errorf("at %s: %w", ref.path, err)
		}
	}
	return local, nil
}

// substitute replaces the artifact references left in the reduced tree with
// their fetched local paths. The tree is private to the resolution call at
// this point, so mutating it in place is safe.
func substitute(t models.Tree, local map[string]string) {
	for k, v := range t {
		t[k] = substituteValue(v, local)
	}
}

func substituteValue(v any, local map[string]string) any {
	switch val := v.(type) {
	case models.ArtifactRef:
		return local[val.Name()]
	case []any:
		for i, item := range val {
			val[i] = substituteValue(item, local)
		}
		return val
	default:
		if sub, ok := models.AsTree(v); ok {
			substitute(sub, local)
			return sub
		}
		return val
	}
}

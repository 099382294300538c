// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

// Package registry validates variant selectors against the set of component
// variants the pipeline bootstrap declared acceptable.
//
// The registry never instantiates anything: mapping a resolved settings block
// to a running component is the bootstrap collaborator's job. Its sole
// purpose is structural validation plus early, descriptive errors — an
// operator who selects a variant that does not exist should learn so during
// configuration resolution, not deep inside pipeline startup.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mstepanek/go-dialog-config/models"
)

// Registry holds, per component key, the set of variant identifiers the
// bootstrap accepts for that component. A component registered with an empty
// set is "open": any variant passes the membership check and only the
// structural check applies.
type Registry struct {
	variants map[string]map[string]struct{}
}

// New creates an empty Registry. Selectors under component keys that were
// never registered are validated structurally only.
func New() *Registry {
	return &Registry{variants: make(map[string]map[string]struct{})}
}

// Default creates a Registry pre-seeded with the canonical pipeline stage
// keys, each with an open variant set. The bootstrap narrows them down via
// [Registry.Register] once its concrete constructors are known.
func Default() *Registry {
	r := New()
	for _, key := range models.ComponentKeys() {
		r.Register(key)
	}
	return r
}

// Register records variantIDs as acceptable for componentKey. Calling it
// with no identifiers marks the component as known with an open variant set.
// Repeated calls accumulate.
func (r *Registry) Register(componentKey string, variantIDs ...string) {
	set, ok := r.variants[componentKey]
	if !ok {
		set = make(map[string]struct{})
		r.variants[componentKey] = set
	}
	for _, id := range variantIDs {
		set[id] = struct{}{}
	}
}

// Variants returns the sorted variant identifiers registered for
// componentKey. It returns nil for unknown or open components.
func (r *Registry) Variants(componentKey string) []string {
	set := r.variants[componentKey]
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the variant selector found under componentKey.
//
// Structurally, the selector's type key must be a string and must index a
// subtree within the selector's own settings map (the selector is
// self-describing: it carries the settings of every possible variant, keyed
// by variant). When variant identifiers were registered for componentKey,
// the declared type must additionally be one of them.
func (r *Registry) Validate(componentKey string, selector models.Tree) error {
	raw, ok := selector[models.TypeKey]
	if !ok {
		return fmt.Errorf("component %q: %w: no %q key", componentKey, ErrInvalidSelector, models.TypeKey)
	}
	variant, ok := raw.(string)
	if !ok {
		return fmt.Errorf("component %q: %w: %q key must be a string, got %T",
			componentKey, ErrInvalidSelector, models.TypeKey, raw)
	}

	settings, present := selector[variant]
	if !present {
		return fmt.Errorf("component %q: %w: selected variant %q has no settings entry",
			componentKey, ErrUnknownVariant, variant)
	}
	if _, ok := models.AsTree(settings); !ok {
		return fmt.Errorf("component %q: %w: settings for variant %q must be a subtree, got %T",
			componentKey, ErrInvalidSelector, variant, settings)
	}

	if registered := r.Variants(componentKey); len(registered) > 0 {
		if _, ok := r.variants[componentKey][variant]; !ok {
			return fmt.Errorf("component %q: %w: variant %q is not registered (acceptable: %s)",
				componentKey, ErrUnknownVariant, variant, strings.Join(registered, ", "))
		}
	}

	return nil
}

package registry

import "errors"

// Validation errors returned by [Registry.Validate]. Both stem from static
// authoring mistakes in the configuration and are never retried.
var (
	// ErrInvalidSelector indicates a variant selector that is structurally
	// broken: its type key is missing or not a string, or the settings entry
	// for the declared type is not a subtree.
	ErrInvalidSelector = errors.New("invalid variant selector")
	// ErrUnknownVariant indicates a selector whose declared type names no
	// settings entry, or a variant identifier that is not registered for the
	// component.
	ErrUnknownVariant = errors.New("unknown variant")
)

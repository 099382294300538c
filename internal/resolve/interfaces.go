package resolve

import "context"

// Store is the artifact source consulted for every online-updatable value.
// It is satisfied by *artifact.Sync; tests substitute their own fakes.
type Store interface {
	// EnsureLocal returns the absolute local path of a valid cached copy of
	// the named artifact, fetching it first when needed.
	EnsureLocal(ctx context.Context, name string) (string, error)
}

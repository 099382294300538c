package artifact

import "errors"

// Errors returned by [Sync.EnsureLocal].
var (
	// ErrFetch indicates a transient remote failure (network error,
	// non-2xx response, or no remote configured). It is recoverable: when a
	// previously cached copy exists, EnsureLocal falls back to it and the
	// failure degrades to a warning.
	ErrFetch = errors.New("artifact fetch failed")
	// ErrUnavailable indicates that no usable copy of the artifact exists:
	// the fetch failed and the cache holds nothing to fall back to.
	ErrUnavailable = errors.New("artifact unavailable")
	// ErrCancelled indicates that the caller's context was cancelled while
	// waiting for the artifact. The underlying fetch is allowed to finish
	// and populate the cache for future attempts.
	ErrCancelled = errors.New("artifact resolution cancelled")
)

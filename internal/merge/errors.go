package merge

import "errors"

// ErrMalformedLayer indicates that a configuration layer is not a well-formed
// tree (for example, it is nil or carries a value of an unsupported kind).
// It is the only failure mode of [Merge]: conflicting values between layers
// never produce an error, later layers simply win.
var ErrMalformedLayer = errors.New("malformed configuration layer")

package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolve_ReplacesMarker verifies plain marker substitution against an
// absolute project root.
func TestResolve_ReplacesMarker(t *testing.T) {
	got := Resolve("{cfg_abs_path}/data/db.py", "/srv/app")
	assert.Equal(t, "/srv/app/data/db.py", got)
}

// TestResolve_PassThroughWithoutMarker verifies that a marker-free value is
// returned unchanged — pass-through, not an error.
func TestResolve_PassThroughWithoutMarker(t *testing.T) {
	assert.Equal(t, "/etc/hosts", Resolve("/etc/hosts", "/srv/app"))
	assert.Equal(t, "no path at all", Resolve("no path at all", "/srv/app"))
}

// TestResolve_MultipleOccurrences verifies that every occurrence of the
// marker in one value is replaced identically.
func TestResolve_MultipleOccurrences(t *testing.T) {
	got := Resolve("{cfg_abs_path}/a:{cfg_abs_path}/b", "/root")
	assert.Equal(t, "/root/a:/root/b", got)
}

// TestResolve_Idempotent verifies that resolving an already-resolved value
// is a no-op.
func TestResolve_Idempotent(t *testing.T) {
	once := Resolve("{cfg_abs_path}/x/y", "/srv/app")
	twice := Resolve(once, "/srv/app")
	assert.Equal(t, once, twice)
}

// TestResolve_AgreesWithProjectPath verifies that the marker form and the
// direct helper produce the same absolute path for equivalent inputs.
func TestResolve_AgreesWithProjectPath(t *testing.T) {
	tests := []struct {
		suffix string
		root   string
	}{
		{"x", "/srv/app"},
		{"data/db.py", "/srv/app"},
		{"deep/nested/file.txt", "/"},
	}

	for _, tt := range tests {
		marker := Resolve(Marker+"/"+tt.suffix, tt.root)
		direct := ProjectPath(tt.suffix, tt.root)
		assert.Equal(t, direct, marker, "suffix %q root %q", tt.suffix, tt.root)
	}
}

// TestResolve_NormalisesResult verifies that substitution cleans redundant
// separators introduced by the marker boundary.
func TestResolve_NormalisesResult(t *testing.T) {
	got := Resolve("{cfg_abs_path}//data/./db.py", "/srv/app/")
	assert.Equal(t, "/srv/app/data/db.py", got)
}

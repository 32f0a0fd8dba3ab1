package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/scalediv/internal/scale"
	"github.com/roach88/scalediv/internal/snapshot"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSnapshot creates a linear snapshot over [0, max] with majors at
// 0 and max and one medium tick in between.
func createTestSnapshot(axis string, max float64) snapshot.Snapshot {
	div := scale.NewDivision(0, max, nil, []float64{max / 2}, []float64{0, max})
	return snapshot.New(axis, "linear", div)
}

package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates UUID-shaped IDs with a counter in the last
// group: 00000000-0000-7000-8000-000000000001, ...000002, and so on.
//
// It satisfies store.IDGenerator and never runs out, which makes it
// convenient for tests that do not care about specific IDs but need
// byte-identical output across runs.
type SequentialIDs struct {
	mu sync.Mutex
	n  int64
}

// NewSequentialIDs creates a generator whose first ID ends in 1.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{}
}

// Generate returns the next ID.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return SequentialID(g.n)
}

// SequentialID returns the n-th ID of a SequentialIDs generator.
func SequentialID(n int64) string {
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", n)
}

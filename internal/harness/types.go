package harness

import "github.com/roach88/scalediv/internal/snapshot"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if the expectations, assertions and invariants all hold.
	Pass bool `json:"pass"`

	// Snapshot is the division as read back from the store.
	Snapshot snapshot.Snapshot `json:"snapshot"`

	// Hash is the content hash of Snapshot.
	Hash string `json:"hash"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

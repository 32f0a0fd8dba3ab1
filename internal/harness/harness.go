package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/scalediv/internal/snapshot"
	"github.com/roach88/scalediv/internal/store"
	"github.com/roach88/scalediv/internal/testutil"
)

// Harness runs scenarios against a store with deterministic IDs and seq
// numbers.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Save the axis to the store
// 2. Compute its division and write the snapshot
// 3. Read the snapshot back and verify it matches
// 4. Check invariants, the expect clause and the assertions
//
// An error is returned only when the scenario could not be executed; a
// division that does not meet the scenario is reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewSequentialIDs()),
		store.WithSequencer(testutil.NewDeterministicClock()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	axis := scenario.Axis

	rec, _, err := h.store.SaveAxis(ctx, axis)
	if err != nil {
		return nil, fmt.Errorf("failed to save axis: %w", err)
	}

	e, err := axis.NewEngine(h.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	div, err := axis.Compute(h.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to compute division: %w", err)
	}

	computed := snapshot.New(rec.Name, rec.Kind, div)
	if _, _, err := h.store.WriteSnapshot(ctx, rec.ID, computed); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	stored, err := h.store.LatestSnapshot(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	result := NewResult()
	result.Snapshot = stored.Snapshot
	result.Hash = stored.Hash

	if !stored.Snapshot.Division().Equal(div) {
		result.AddError("stored snapshot does not match the computed division")
	}

	for _, msg := range CheckInvariants(div) {
		result.AddError(msg)
	}

	maxMajor, _ := axis.Budget()
	actx := &AssertionContext{
		Kind:     e.Kind(),
		Location: e.Location(),
		MaxMajor: maxMajor,
	}

	if scenario.Expect != nil {
		for _, msg := range checkExpect(div, scenario.Expect, actx) {
			result.AddError(msg)
		}
	}

	for _, msg := range EvaluateAssertions(div, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

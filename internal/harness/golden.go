package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/scalediv/internal/snapshot"
)

// GoldenBytes returns the golden file content for a result: the canonical
// JSON of the scenario name and its division.
func GoldenBytes(scenarioName string, result *Result) ([]byte, error) {
	return snapshot.MarshalCanonical(map[string]any{
		"scenario_name": scenarioName,
		"division":      result.Snapshot.Map(),
	})
}

// RunWithGolden executes a scenario and compares the division against a
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario could not be executed.
// Test failure (via goldie) occurs if the division doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := GoldenBytes(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

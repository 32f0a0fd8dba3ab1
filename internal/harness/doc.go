// Package harness runs axis scenarios: it computes the division of a
// configured axis and checks it against expected ticks, assertions and
// golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: fortnight
//	description: "Two weeks in UTC split into days"
//	axis:
//	  name: days
//	  engine: time
//	  min: 2024-01-01
//	  max: 2024-01-15
//	  max_major: 7
//	  max_minor: 0
//	  timezone: UTC
//	expect:
//	  interval: [2024-01-01, 2024-01-15]
//	  major: [2024-01-01, 2024-01-03, 2024-01-05, 2024-01-07,
//	          2024-01-09, 2024-01-11, 2024-01-13, 2024-01-15]
//	assertions:
//	  - type: count
//	    tick: minor
//	    count: 0
//
// The axis block uses the same fields as an axes file (see internal/config).
// Expected tick values are numbers, or dates for time axes; dates are read
// in the axis time zone.
//
// # Assertion Types
//
//   - count: the tick level has exactly count ticks
//   - contains: every value appears in the tick level
//   - excludes: no value appears in the tick level
//   - budget: at most max_major+1 major ticks
//   - disjoint: no value appears in more than one tick level
//
// Every run also checks the division invariants (finite, bounded and
// ordered ticks) whether or not the scenario asks for them.
//
// # Deterministic Testing
//
// Each run saves the axis and its snapshot to a fresh in-memory store using
// testutil.SequentialIDs and testutil.DeterministicClock, then reads the
// snapshot back. Golden files hold the canonical JSON of that snapshot, so
// the same scenario always produces byte-identical output.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/fortnight.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness

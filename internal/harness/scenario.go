package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/scalediv/internal/config"
)

// Scenario defines an axis and what its division must look like.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Axis is the axis under test.
	Axis config.Axis `yaml:"axis"`

	// Expect lists exact tick values. Levels left out are not compared.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Assertions validate properties of the division.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies exact division content.
// Values are numbers, or dates for time axes.
type ExpectClause struct {
	// Interval is [lower, upper] of the division.
	Interval []config.Bound `yaml:"interval,omitempty"`

	Major  []config.Bound `yaml:"major,omitempty"`
	Medium []config.Bound `yaml:"medium,omitempty"`
	Minor  []config.Bound `yaml:"minor,omitempty"`

	// None lists tick levels that must be empty.
	None []string `yaml:"none,omitempty"`
}

// Assertion validates a property of the division.
type Assertion struct {
	// Type specifies the assertion type:
	// - "count": tick level has exactly Count ticks
	// - "contains": every value in Values appears in the tick level
	// - "excludes": no value in Values appears in the tick level
	// - "budget": at most max_major+1 major ticks
	// - "disjoint": tick levels share no values
	Type string `yaml:"type"`

	// Tick is the tick level: major, medium or minor.
	// Used by count, contains and excludes.
	Tick string `yaml:"tick,omitempty"`

	// Count is the expected number of ticks (used by count).
	Count int `yaml:"count,omitempty"`

	// Values are tick values (used by contains and excludes).
	Values []config.Bound `yaml:"values,omitempty"`
}

// Assertion type constants.
const (
	AssertCount    = "count"
	AssertContains = "contains"
	AssertExcludes = "excludes"
	AssertBudget   = "budget"
	AssertDisjoint = "disjoint"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields so typos like "assertion:" surface
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	scenario.Axis.Name = config.NormalizeName(scenario.Axis.Name)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if errs := config.Validate(&config.File{Axes: []config.Axis{s.Axis}}); len(errs) > 0 {
		return fmt.Errorf("axis: %w", config.ValidationErrors(errs))
	}

	if s.Expect == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions is required")
	}

	if s.Expect != nil {
		if n := len(s.Expect.Interval); n != 0 && n != 2 {
			return fmt.Errorf("expect.interval: want [lower, upper], got %d values", n)
		}
		for i, level := range s.Expect.None {
			if _, ok := tickLevel(level); !ok {
				return fmt.Errorf("expect.none[%d]: unknown tick level %q", i, level)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertCount:
		if _, ok := tickLevel(a.Tick); !ok {
			return fmt.Errorf("assertions[%d]: unknown tick level %q for count", index, a.Tick)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertContains, AssertExcludes:
		if _, ok := tickLevel(a.Tick); !ok {
			return fmt.Errorf("assertions[%d]: unknown tick level %q for %s", index, a.Tick, a.Type)
		}
		if len(a.Values) == 0 {
			return fmt.Errorf("assertions[%d]: values list is required for %s", index, a.Type)
		}
	case AssertBudget, AssertDisjoint:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

package harness

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/roach88/scalediv/internal/config"
	"github.com/roach88/scalediv/internal/engine"
	"github.com/roach88/scalediv/internal/scale"
)

// valueTolerance is the relative tolerance for comparing tick values.
const valueTolerance = 1e-9

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string    // Assertion type for categorization
	Expected string    // Human-readable expected outcome
	Actual   string    // Human-readable actual outcome
	Ticks    []float64 // Ticks of the level under test, for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	if e.Ticks != nil {
		fmt.Fprintf(&buf, "\n  Ticks: %v", e.Ticks)
	}

	return buf.String()
}

// AssertionContext carries what assertions need besides the division.
type AssertionContext struct {
	Kind     engine.Kind
	Location *time.Location
	MaxMajor int
}

// resolve converts expected bounds to tick values.
func (actx *AssertionContext) resolve(bounds []config.Bound) ([]float64, error) {
	out := make([]float64, len(bounds))
	for i, b := range bounds {
		v, err := b.Resolve(actx.Kind, actx.Location)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// tickLevel parses a tick level name.
func tickLevel(name string) (scale.TickType, bool) {
	switch name {
	case "major":
		return scale.MajorTick, true
	case "medium":
		return scale.MediumTick, true
	case "minor":
		return scale.MinorTick, true
	}
	return 0, false
}

// valuesEqual compares tick values with a relative tolerance.
func valuesEqual(a, b float64) bool {
	return math.Abs(a-b) <= valueTolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func indexOf(ticks []float64, v float64) int {
	for i, t := range ticks {
		if valuesEqual(t, v) {
			return i
		}
	}
	return -1
}

func ticksEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valuesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// checkExpect compares the division with the exact values of an expect
// clause.
func checkExpect(div scale.Division, expect *ExpectClause, actx *AssertionContext) []string {
	var errs []string

	if len(expect.Interval) == 2 {
		want, err := actx.resolve(expect.Interval)
		if err != nil {
			return []string{fmt.Sprintf("expect.interval: %v", err)}
		}
		got := []float64{div.LowerBound(), div.UpperBound()}
		if !ticksEqual(want, got) {
			errs = append(errs, (&AssertionError{
				Type:     "expect.interval",
				Expected: fmt.Sprintf("%v", want),
				Actual:   fmt.Sprintf("%v", got),
			}).Error())
		}
	}

	levels := []struct {
		name   string
		tick   scale.TickType
		bounds []config.Bound
	}{
		{"major", scale.MajorTick, expect.Major},
		{"medium", scale.MediumTick, expect.Medium},
		{"minor", scale.MinorTick, expect.Minor},
	}
	for _, level := range levels {
		if level.bounds == nil {
			continue
		}
		want, err := actx.resolve(level.bounds)
		if err != nil {
			errs = append(errs, fmt.Sprintf("expect.%s: %v", level.name, err))
			continue
		}
		got := div.Ticks(level.tick)
		if !ticksEqual(want, got) {
			errs = append(errs, (&AssertionError{
				Type:     "expect." + level.name,
				Expected: fmt.Sprintf("%v", want),
				Actual:   fmt.Sprintf("%v", got),
			}).Error())
		}
	}

	for _, name := range expect.None {
		tick, _ := tickLevel(name)
		if got := div.Ticks(tick); len(got) > 0 {
			errs = append(errs, (&AssertionError{
				Type:     "expect.none",
				Expected: fmt.Sprintf("no %s ticks", name),
				Actual:   fmt.Sprintf("%d ticks", len(got)),
				Ticks:    got,
			}).Error())
		}
	}

	return errs
}

// assertCount checks the number of ticks of one level.
func assertCount(div scale.Division, a Assertion) error {
	tick, _ := tickLevel(a.Tick)
	ticks := div.Ticks(tick)
	if len(ticks) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCount,
		Expected: fmt.Sprintf("%d %s ticks", a.Count, a.Tick),
		Actual:   fmt.Sprintf("%d %s ticks", len(ticks), a.Tick),
		Ticks:    ticks,
	}
}

// assertMembership checks contains (want=true) or excludes (want=false).
func assertMembership(div scale.Division, a Assertion, actx *AssertionContext, want bool) error {
	values, err := actx.resolve(a.Values)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Type, err)
	}

	tick, _ := tickLevel(a.Tick)
	ticks := div.Ticks(tick)
	for _, v := range values {
		if found := indexOf(ticks, v) >= 0; found != want {
			expected, actual := "include", "not found"
			if found {
				expected, actual = "exclude", "found"
			}
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s ticks %s %v", a.Tick, expected, v),
				Actual:   fmt.Sprintf("%v %s", v, actual),
				Ticks:    ticks,
			}
		}
	}
	return nil
}

// assertBudget checks that the major ticks fit the configured budget.
func assertBudget(div scale.Division, actx *AssertionContext) error {
	limit := max(actx.MaxMajor, 1) + 1
	if n := len(div.Major); n > limit {
		return &AssertionError{
			Type:     AssertBudget,
			Expected: fmt.Sprintf("at most %d major ticks", limit),
			Actual:   fmt.Sprintf("%d major ticks", n),
			Ticks:    div.Major,
		}
	}
	return nil
}

// assertDisjoint checks that no value is a tick of two levels.
func assertDisjoint(div scale.Division) error {
	for a := scale.MinorTick; a < scale.NTickTypes; a++ {
		for b := a + 1; b < scale.NTickTypes; b++ {
			for _, v := range div.Ticks(a) {
				if indexOf(div.Ticks(b), v) >= 0 {
					return &AssertionError{
						Type:     AssertDisjoint,
						Expected: "tick levels share no values",
						Actual:   fmt.Sprintf("%v is both a %s and a %s tick", v, a, b),
					}
				}
			}
		}
	}
	return nil
}

// CheckInvariants returns the invariant violations of a division: every
// tick is finite, lies inside the interval and each level is strictly
// monotone in the direction of the interval.
func CheckInvariants(div scale.Division) []string {
	var errs []string

	for t := scale.MinorTick; t < scale.NTickTypes; t++ {
		ticks := div.Ticks(t)
		for i, v := range ticks {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, fmt.Sprintf("invariant: %s tick %d is %v", t, i, v))
				continue
			}
			if !div.Interval.Contains(v) {
				errs = append(errs, fmt.Sprintf("invariant: %s tick %v outside %v", t, v, div.Interval))
			}
			if i > 0 && !increasing(div, ticks[i-1], v) {
				errs = append(errs, fmt.Sprintf("invariant: %s ticks %v, %v out of order", t, ticks[i-1], v))
			}
		}
	}

	return errs
}

func increasing(div scale.Division, prev, next float64) bool {
	if div.Interval.Inverted() {
		return next < prev
	}
	return next > prev
}

// EvaluateAssertions evaluates all assertions and returns failure
// messages. Returns an empty slice if every assertion passes.
func EvaluateAssertions(div scale.Division, assertions []Assertion, actx *AssertionContext) []string {
	errs := []string{}

	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertCount:
			err = assertCount(div, a)
		case AssertContains:
			err = assertMembership(div, a, actx, true)
		case AssertExcludes:
			err = assertMembership(div, a, actx, false)
		case AssertBudget:
			err = assertBudget(div, actx)
		case AssertDisjoint:
			err = assertDisjoint(div)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return errs
}

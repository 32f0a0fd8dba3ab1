package scale

import (
	"fmt"
	"slices"
	"strings"
)

// TickType identifies one of the three tick sequences of a Division.
type TickType int

const (
	// MinorTick is the finest subdivision.
	MinorTick TickType = iota

	// MediumTick marks the middle of a major step with an even number of
	// subdivisions.
	MediumTick

	// MajorTick carries the labels.
	MajorTick

	// NTickTypes is the number of tick types.
	NTickTypes
)

// String implements fmt.Stringer.
func (t TickType) String() string {
	switch t {
	case MinorTick:
		return "minor"
	case MediumTick:
		return "medium"
	case MajorTick:
		return "major"
	default:
		return fmt.Sprintf("TickType(%d)", int(t))
	}
}

// Division is a computed tick layout.
//
// Interval is the bounding interval; it is inverted when the axis runs from
// high to low values, in which case every tick sequence is in descending
// order. Divisions are snapshots: callers that need to modify ticks copy
// them first (see Clone).
type Division struct {
	Interval Interval  `json:"interval"`
	Major    []float64 `json:"major"`
	Medium   []float64 `json:"medium"`
	Minor    []float64 `json:"minor"`
}

// NewDivision creates a division over [lower, upper] with the given ticks.
// Tick slices are copied.
func NewDivision(lower, upper float64, minor, medium, major []float64) Division {
	return Division{
		Interval: Interval{Min: lower, Max: upper},
		Major:    slices.Clone(major),
		Medium:   slices.Clone(medium),
		Minor:    slices.Clone(minor),
	}
}

// LowerBound returns the first bound of the interval.
func (d Division) LowerBound() float64 { return d.Interval.Min }

// UpperBound returns the second bound of the interval.
func (d Division) UpperBound() float64 { return d.Interval.Max }

// Range returns UpperBound - LowerBound. Negative for inverted divisions.
func (d Division) Range() float64 { return d.Interval.Max - d.Interval.Min }

// IsEmpty reports whether the interval has zero width.
func (d Division) IsEmpty() bool {
	return d.Interval.Min == d.Interval.Max
}

// IsIncreasing reports whether the interval runs from low to high.
func (d Division) IsIncreasing() bool {
	return d.Interval.Min <= d.Interval.Max
}

// Contains reports whether value is inside the bounding interval.
func (d Division) Contains(value float64) bool {
	n := d.Interval.Normalized()
	return value >= n.Min && value <= n.Max
}

// Ticks returns the tick sequence of the given type.
func (d Division) Ticks(t TickType) []float64 {
	switch t {
	case MinorTick:
		return d.Minor
	case MediumTick:
		return d.Medium
	case MajorTick:
		return d.Major
	default:
		return nil
	}
}

// SetTicks replaces the tick sequence of the given type.
func (d *Division) SetTicks(t TickType, ticks []float64) {
	switch t {
	case MinorTick:
		d.Minor = ticks
	case MediumTick:
		d.Medium = ticks
	case MajorTick:
		d.Major = ticks
	}
}

// Clone returns a deep copy.
func (d Division) Clone() Division {
	return NewDivision(d.Interval.Min, d.Interval.Max, d.Minor, d.Medium, d.Major)
}

// Inverted returns the division with swapped bounds and reversed tick order.
func (d Division) Inverted() Division {
	out := d.Clone()
	out.Interval = d.Interval.Swapped()
	for t := MinorTick; t < NTickTypes; t++ {
		slices.Reverse(out.Ticks(t))
	}
	return out
}

// Bounded returns a division limited to the interval [lower, upper].
// Ticks outside the interval are dropped with a tolerance of 1e-6 of its
// width. The interval of the result is (lower, upper) as given.
func (d Division) Bounded(lower, upper float64) Division {
	iv := Interval{Min: lower, Max: upper}
	out := Division{Interval: iv}
	for t := MinorTick; t < NTickTypes; t++ {
		var kept []float64
		for _, v := range d.Ticks(t) {
			if iv.Contains(v) {
				kept = append(kept, v)
			}
		}
		out.SetTicks(t, kept)
	}
	return out
}

// Equal reports structural equality: interval and all three tick sequences.
func (d Division) Equal(o Division) bool {
	return d.Interval == o.Interval &&
		slices.Equal(d.Major, o.Major) &&
		slices.Equal(d.Medium, o.Medium) &&
		slices.Equal(d.Minor, o.Minor)
}

// String implements fmt.Stringer.
func (d Division) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", d.Interval)
	for t := MajorTick; t >= MinorTick; t-- {
		fmt.Fprintf(&b, " %s%v", t, d.Ticks(t))
	}
	return b.String()
}

// StripTicks removes ticks outside iv and removes adjacent duplicates.
func StripTicks(ticks []float64, iv Interval) []float64 {
	var out []float64
	for _, v := range ticks {
		if !iv.Contains(v) {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

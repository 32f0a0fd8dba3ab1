package scale

import (
	"fmt"
	"math"
)

// Interval is a pair of domain bounds.
//
// Min may exceed Max; such an interval describes an inverted axis.
// Use Normalized to obtain the ordered form.
type Interval struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// NewInterval creates an interval from two bounds without reordering them.
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// IsValid reports whether both bounds are finite numbers.
func (i Interval) IsValid() bool {
	return !math.IsNaN(i.Min) && !math.IsNaN(i.Max) &&
		!math.IsInf(i.Min, 0) && !math.IsInf(i.Max, 0)
}

// Width returns Max - Min of the normalized interval.
func (i Interval) Width() float64 {
	n := i.Normalized()
	return n.Max - n.Min
}

// Inverted reports whether Min > Max.
func (i Interval) Inverted() bool {
	return i.Min > i.Max
}

// Normalized returns the interval with Min <= Max.
func (i Interval) Normalized() Interval {
	if i.Min > i.Max {
		return Interval{Min: i.Max, Max: i.Min}
	}
	return i
}

// Swapped returns the interval with its bounds exchanged.
func (i Interval) Swapped() Interval {
	return Interval{Min: i.Max, Max: i.Min}
}

// Extend widens the normalized interval so that it includes value.
func (i Interval) Extend(value float64) Interval {
	if math.IsNaN(value) {
		return i
	}
	n := i.Normalized()
	return Interval{
		Min: math.Min(n.Min, value),
		Max: math.Max(n.Max, value),
	}
}

// Symmetrize returns an interval centered on value whose half width is the
// larger of the distances from value to either bound.
func (i Interval) Symmetrize(value float64) Interval {
	n := i.Normalized()
	delta := math.Max(math.Abs(value-n.Max), math.Abs(value-n.Min))
	return Interval{Min: value - delta, Max: value + delta}
}

// Contains reports whether value lies inside the normalized interval.
// Values within 1e-6 of the width beyond either bound still count as inside.
func (i Interval) Contains(value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	n := i.Normalized()
	eps := math.Abs(1.0e-6 * (n.Max - n.Min))
	return value >= n.Min-eps && value <= n.Max+eps
}

// Limited clamps both bounds into [lo, hi].
func (i Interval) Limited(lo, hi float64) Interval {
	return Interval{
		Min: math.Max(lo, math.Min(hi, i.Min)),
		Max: math.Max(lo, math.Min(hi, i.Max)),
	}
}

// String implements fmt.Stringer.
func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.Min, i.Max)
}

// BuildInterval manufactures a small interval around a single value.
//
// The width is 1% of the value's magnitude, or 1 when value is zero.
// The result never leaves the representable float64 range.
func BuildInterval(value float64) Interval {
	delta := 0.5
	if value != 0 {
		delta = math.Abs(0.005 * value)
	}

	if math.MaxFloat64-delta < value {
		return Interval{Min: math.MaxFloat64 - delta, Max: math.MaxFloat64}
	}
	if -math.MaxFloat64+delta > value {
		return Interval{Min: -math.MaxFloat64, Max: -math.MaxFloat64 + delta}
	}
	return Interval{Min: value - delta, Max: value + delta}
}

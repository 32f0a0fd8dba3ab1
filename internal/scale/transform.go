package scale

import "math"

// Bounds of the logarithmic domain. Values outside are clamped.
const (
	LogMin = 1.0e-150
	LogMax = 1.0e150
)

// Transform maps domain values into a space where they are linear.
//
// Implementations are stateless and safe for concurrent use.
type Transform interface {
	// Transform maps a domain value into linear space.
	Transform(value float64) float64

	// InvTransform maps a linear value back into the domain.
	InvTransform(value float64) float64

	// Bounded clamps value into the valid domain of the transform.
	Bounded(value float64) float64
}

// NullTransform is the identity transform used by linear and time scales.
type NullTransform struct{}

// Transform returns value.
func (NullTransform) Transform(value float64) float64 { return value }

// InvTransform returns value.
func (NullTransform) InvTransform(value float64) float64 { return value }

// Bounded returns value.
func (NullTransform) Bounded(value float64) float64 { return value }

// LogTransform maps values through the natural logarithm.
//
// Non-positive values are outside its domain; Transform clamps them to
// LogMin instead of producing -Inf or NaN.
type LogTransform struct{}

// Transform returns ln(value) after clamping value into [LogMin, LogMax].
func (t LogTransform) Transform(value float64) float64 {
	return math.Log(t.Bounded(value))
}

// InvTransform returns exp(value).
func (LogTransform) InvTransform(value float64) float64 {
	return math.Exp(value)
}

// Bounded clamps value into [LogMin, LogMax]. NaN is mapped to LogMin.
func (LogTransform) Bounded(value float64) float64 {
	if math.IsNaN(value) || value < LogMin {
		return LogMin
	}
	if value > LogMax {
		return LogMax
	}
	return value
}

// Map translates between domain values and paint coordinates.
//
// The scale interval (s1, s2) is mapped onto the paint interval (p1, p2).
// If s1 > s2 the direction is reversed. A Map is an immutable value;
// the With* methods return modified copies.
type Map struct {
	s1, s2    float64
	p1, p2    float64
	ts1       float64
	cnv       float64
	transform Transform
}

// NewMap creates a map for the given transform. A nil transform is the
// identity. The scale and paint intervals default to [0, 1].
func NewMap(t Transform) Map {
	if t == nil {
		t = NullTransform{}
	}
	m := Map{s1: 0, s2: 1, p1: 0, p2: 1, transform: t}
	m.update()
	return m
}

// WithScaleInterval returns a copy mapping the scale interval (s1, s2).
func (m Map) WithScaleInterval(s1, s2 float64) Map {
	m.s1 = m.transform.Bounded(s1)
	m.s2 = m.transform.Bounded(s2)
	m.update()
	return m
}

// WithPaintInterval returns a copy mapping onto the paint interval (p1, p2).
func (m Map) WithPaintInterval(p1, p2 float64) Map {
	m.p1 = p1
	m.p2 = p2
	m.update()
	return m
}

// Transformation returns the underlying transform.
func (m Map) Transformation() Transform { return m.transform }

// ScaleInterval returns the scale interval as given (possibly inverted).
func (m Map) ScaleInterval() Interval { return Interval{Min: m.s1, Max: m.s2} }

// PaintInterval returns the paint interval.
func (m Map) PaintInterval() Interval { return Interval{Min: m.p1, Max: m.p2} }

// IsInverting reports whether increasing domain values map to decreasing
// paint positions.
func (m Map) IsInverting() bool {
	return (m.p1 < m.p2) != (m.s1 < m.s2)
}

// Transform maps a domain value to a paint position.
func (m Map) Transform(value float64) float64 {
	return m.p1 + (m.transform.Transform(value)-m.ts1)*m.cnv
}

// InvTransform maps a paint position back to a domain value.
func (m Map) InvTransform(position float64) float64 {
	if m.cnv == 0 {
		return m.s1
	}
	return m.transform.InvTransform(m.ts1 + (position-m.p1)/m.cnv)
}

func (m *Map) update() {
	ts1 := m.transform.Transform(m.s1)
	ts2 := m.transform.Transform(m.s2)

	m.ts1 = ts1
	m.cnv = 0
	if ts2 != ts1 {
		m.cnv = (m.p2 - m.p1) / (ts2 - ts1)
	}
}

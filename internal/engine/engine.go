package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/roach88/scalediv/internal/calendar"
	"github.com/roach88/scalediv/internal/scale"
)

// Kind selects the step logic of an Engine.
type Kind int

const (
	Linear Kind = iota
	Logarithmic
	Time
)

var kindNames = [...]string{
	Linear:      "linear",
	Logarithmic: "log",
	Time:        "time",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < Linear || k > Time {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses "linear", "log" (or "logarithmic") and "time".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	case "time", "date", "datetime":
		return Time, nil
	default:
		return Linear, fmt.Errorf("unknown engine kind %q", s)
	}
}

// Defaults.
const (
	// DefaultMaxWeeks is the number of weeks above which a time scale may
	// switch from weeks to months.
	DefaultMaxWeeks = 4

	// maxTicks bounds every tick loop.
	maxTicks = 10000

	// maxBoundRetries bounds the budget doublings of ComputeScale.
	maxBoundRetries = 3

	// linearLimit keeps linear bounds away from the float64 limits so that
	// widths stay finite.
	linearLimit = 1.0e300
)

// Engine computes scale divisions of one Kind.
//
// An Engine is immutable after New and safe for concurrent use.
type Engine struct {
	kind        Kind
	attrs       scale.Attribute
	reference   float64
	lowerMargin float64
	upperMargin float64
	base        int
	maxWeeks    int
	loc         *time.Location
	week0       calendar.Week0Type
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAttributes sets the attribute flags.
func WithAttributes(attrs scale.Attribute) Option {
	return func(e *Engine) {
		e.attrs = attrs
	}
}

// WithReference sets the reference value used by the Symmetric and
// IncludeReference attributes. Default: 0.
func WithReference(ref float64) Option {
	return func(e *Engine) {
		e.reference = ref
	}
}

// WithMargins sets margins added below and above the interval before it is
// aligned. Margins are in domain units for linear and time scales and in
// decades (powers of the base) for logarithmic scales. Negative margins
// are treated as 0.
func WithMargins(lower, upper float64) Option {
	return func(e *Engine) {
		e.lowerMargin = math.Max(lower, 0)
		e.upperMargin = math.Max(upper, 0)
	}
}

// WithBase sets the base for nice-number selection and for logarithms.
// Values below 2 are ignored. Default: 10.
func WithBase(base int) Option {
	return func(e *Engine) {
		if base >= 2 {
			e.base = base
		}
	}
}

// WithMaxWeeks sets the week count above which a time scale considers
// months. Default: 4.
func WithMaxWeeks(weeks int) Option {
	return func(e *Engine) {
		e.maxWeeks = max(weeks, 0)
	}
}

// WithLocation sets the time zone of a time scale. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithWeek0 sets the week numbering used to align week steps.
func WithWeek0(w calendar.Week0Type) Option {
	return func(e *Engine) {
		e.week0 = w
	}
}

// WithLogger sets the logger for clamping reports. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine of the given kind.
func New(kind Kind, opts ...Option) *Engine {
	e := &Engine{
		kind:     kind,
		base:     scale.DefaultBase,
		maxWeeks: DefaultMaxWeeks,
		loc:      time.Local,
		week0:    calendar.FirstThursday,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Kind returns the engine kind.
func (e *Engine) Kind() Kind { return e.kind }

// Attributes returns the attribute flags.
func (e *Engine) Attributes() scale.Attribute { return e.attrs }

// TestAttribute reports whether attr is set.
func (e *Engine) TestAttribute(attr scale.Attribute) bool { return e.attrs.Has(attr) }

// Reference returns the reference value.
func (e *Engine) Reference() float64 { return e.reference }

// Margins returns the lower and upper margins.
func (e *Engine) Margins() (lower, upper float64) { return e.lowerMargin, e.upperMargin }

// Base returns the base.
func (e *Engine) Base() int { return e.base }

// MaxWeeks returns the week threshold of time scales.
func (e *Engine) MaxWeeks() int { return e.maxWeeks }

// Location returns the time zone of time scales.
func (e *Engine) Location() *time.Location { return e.loc }

// Week0 returns the week numbering of time scales.
func (e *Engine) Week0() calendar.Week0Type { return e.week0 }

// with returns a copy of e with opts applied.
func (e *Engine) with(opts ...Option) *Engine {
	c := *e
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// linear returns the linear engine used as fallback by log and time scales.
func (e *Engine) linear() *Engine {
	c := e.with()
	c.kind = Linear
	c.base = scale.DefaultBase
	return c
}

// Transformation returns the transform of the engine kind.
func (e *Engine) Transformation() scale.Transform {
	if e.kind == Logarithmic {
		return scale.LogTransform{}
	}
	return scale.NullTransform{}
}

// TransformFor returns a map from the division's interval onto the paint
// interval [0, 1]. An inverted division yields an inverting map. Use
// Map.WithPaintInterval to map onto device coordinates.
func (e *Engine) TransformFor(div scale.Division) scale.Map {
	return scale.NewMap(e.Transformation()).
		WithScaleInterval(div.Interval.Min, div.Interval.Max)
}

// AutoScale widens [x1, x2] so that its bounds are multiples of a step size
// that divides it into at most maxSteps steps.
//
// The returned bounds are ordered unless the Inverted attribute is set, in
// which case they are swapped and the step is negative. For logarithmic
// scales the step is in decades, or in domain units when the interval spans
// less than one decade.
func (e *Engine) AutoScale(maxSteps int, x1, x2 float64) (float64, float64, float64) {
	iv := e.sanitize(scale.NewInterval(x1, x2))
	switch e.kind {
	case Logarithmic:
		return e.logAutoScale(maxSteps, iv.Min, iv.Max, 0)
	case Time:
		return e.timeAutoScale(maxSteps, iv.Min, iv.Max)
	default:
		return e.linearAutoScale(maxSteps, iv.Min, iv.Max, 0)
	}
}

// DivideScale computes ticks for [x1, x2].
//
// A zero step lets the engine choose one from maxMajor; otherwise the step
// (in decades for logarithmic scales, milliseconds for time scales) is used
// as given, or as a hint for time scales whose units are not equidistant.
// Logarithmic intervals narrower than one decade are divided linearly and
// take their step in domain units.
// The division is bounded to [x1, x2] and inverted when x1 > x2.
func (e *Engine) DivideScale(x1, x2 float64, maxMajor, maxMinor int, step float64) scale.Division {
	maxMajor = max(maxMajor, 1)
	maxMinor = max(maxMinor, 0)

	iv := e.sanitize(scale.NewInterval(x1, x2))
	switch e.kind {
	case Logarithmic:
		return e.logDivideScale(iv.Min, iv.Max, maxMajor, maxMinor, step)
	case Time:
		return e.timeDivideScale(iv.Min, iv.Max, maxMajor, maxMinor, step)
	default:
		return e.linearDivideScale(iv.Min, iv.Max, maxMajor, maxMinor, step)
	}
}

// ComputeScale divides iv into at most maxMajor major steps, each split into
// at most maxMinor minor steps.
//
// Linear and logarithmic scales are auto-scaled first; a non-zero fixedStep
// replaces the computed step. Time scales are divided on the prepared
// interval directly, with fixedStep (milliseconds) as a hint. Attributes are
// applied in both cases.
//
// The division is bounded to iv after margins and the Symmetric and
// IncludeReference attributes: alignment to the step never puts a tick
// outside that range. The result is always a usable division: degenerate
// input produces a narrow interval with at least one major tick.
func (e *Engine) ComputeScale(iv scale.Interval, maxMajor, maxMinor int, fixedStep float64) scale.Division {
	if maxMajor < 1 {
		e.logger.Debug("major step budget raised to 1", "max_major", maxMajor)
		maxMajor = 1
	}
	maxMinor = max(maxMinor, 0)
	if math.IsNaN(fixedStep) || math.IsInf(fixedStep, 0) {
		fixedStep = 0
	}
	fixedStep = math.Abs(fixedStep)

	iv = e.sanitize(iv)

	switch e.kind {
	case Logarithmic:
		return e.boundedTo(e.logRequested(iv.Min, iv.Max), maxMajor, fixedStep, func(n int) scale.Division {
			x1, x2, step := e.logAutoScale(n, iv.Min, iv.Max, fixedStep)
			return e.logDivideScale(x1, x2, n, maxMinor, step)
		})
	case Time:
		p := e.timePrepare(iv)
		return e.timeDivideScale(p.Min, p.Max, maxMajor, maxMinor, fixedStep)
	default:
		return e.boundedTo(e.linearRequested(iv.Min, iv.Max), maxMajor, fixedStep, func(n int) scale.Division {
			x1, x2, step := e.linearAutoScale(n, iv.Min, iv.Max, fixedStep)
			return e.linearDivideScale(x1, x2, n, maxMinor, step)
		})
	}
}

// boundedTo runs divide and limits the division to req, the interval before
// alignment. When no major tick is left inside req the step was coarser than
// req, and divide is retried with a doubled budget. A fixed step is never
// refined.
func (e *Engine) boundedTo(req scale.Interval, maxMajor int, fixedStep float64, divide func(maxMajor int) scale.Division) scale.Division {
	var div scale.Division
	for i := 0; i <= maxBoundRetries; i++ {
		div = bounded(divide(maxMajor), req)
		if len(div.Major) > 0 || fixedStep != 0 {
			break
		}
		maxMajor *= 2
	}
	return div
}

// bounded clips div to the ordered interval req, keeping the orientation of
// div. The bounding interval is the intersection of both.
func bounded(div scale.Division, req scale.Interval) scale.Division {
	n := div.Interval.Normalized()
	lo, hi := math.Max(req.Min, n.Min), math.Min(req.Max, n.Max)
	if !(lo < hi) {
		return div
	}
	if div.IsIncreasing() {
		return div.Bounded(lo, hi)
	}
	return div.Bounded(hi, lo)
}

// sanitize replaces NaN and infinite bounds. A NaN bound takes the value of
// the other bound (0 when both are NaN); infinities are clamped to the
// domain limits of the engine kind.
func (e *Engine) sanitize(iv scale.Interval) scale.Interval {
	if iv.IsValid() && (e.kind != Linear || (math.Abs(iv.Min) <= linearLimit && math.Abs(iv.Max) <= linearLimit)) {
		return iv
	}

	lo, hi := -linearLimit, linearLimit
	switch e.kind {
	case Logarithmic:
		lo, hi = scale.LogMin, scale.LogMax
	case Time:
		lo, hi = calendar.MinValue, calendar.MaxValue
	}

	fix := func(v, other float64) float64 {
		if math.IsNaN(v) {
			v = other
		}
		if math.IsNaN(v) {
			v = 0
		}
		return math.Max(lo, math.Min(hi, v))
	}

	out := scale.Interval{Min: fix(iv.Min, iv.Max), Max: fix(iv.Max, iv.Min)}
	e.logger.Warn("interval bounds clamped",
		"kind", e.kind.String(),
		"interval", iv.String(),
		"clamped", out.String())
	return out
}

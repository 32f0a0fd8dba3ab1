package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/scalediv/internal/calendar"
	"github.com/roach88/scalediv/internal/engine"
	"github.com/roach88/scalediv/internal/scale"
)

// Budget defaults, used when an axis leaves them out.
const (
	DefaultMaxMajor = 8
	DefaultMaxMinor = 5
)

// File is the content of an axes file.
type File struct {
	Axes []Axis `yaml:"axes" json:"axes"`
}

// Axis finds an axis by name.
func (f *File) Axis(name string) (*Axis, bool) {
	name = NormalizeName(name)
	for i := range f.Axes {
		if f.Axes[i].Name == name {
			return &f.Axes[i], true
		}
	}
	return nil, false
}

// Axis configures one scale.
type Axis struct {
	Name       string   `yaml:"name" json:"name"`
	Engine     string   `yaml:"engine,omitempty" json:"engine,omitempty"`
	Min        Bound    `yaml:"min" json:"min"`
	Max        Bound    `yaml:"max" json:"max"`
	MaxMajor   *int     `yaml:"max_major,omitempty" json:"max_major,omitempty"`
	MaxMinor   *int     `yaml:"max_minor,omitempty" json:"max_minor,omitempty"`
	Step       float64  `yaml:"step,omitempty" json:"step,omitempty"`
	Reference  float64  `yaml:"reference,omitempty" json:"reference,omitempty"`
	Attributes []string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Margins    *Margins `yaml:"margins,omitempty" json:"margins,omitempty"`
	Base       int      `yaml:"base,omitempty" json:"base,omitempty"`
	MaxWeeks   *int     `yaml:"max_weeks,omitempty" json:"max_weeks,omitempty"`
	Timezone   string   `yaml:"timezone,omitempty" json:"timezone,omitempty"`
	Week0      string   `yaml:"week0,omitempty" json:"week0,omitempty"`
}

// Margins are added below and above the interval before it is aligned.
type Margins struct {
	Lower float64 `yaml:"lower,omitempty" json:"lower,omitempty"`
	Upper float64 `yaml:"upper,omitempty" json:"upper,omitempty"`
}

// NormalizeName trims and NFC normalizes an axis name.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Kind parses the engine kind.
func (a *Axis) Kind() (engine.Kind, error) {
	return engine.ParseKind(a.Engine)
}

// Budget returns the major and minor step budgets with defaults applied.
func (a *Axis) Budget() (maxMajor, maxMinor int) {
	maxMajor, maxMinor = DefaultMaxMajor, DefaultMaxMinor
	if a.MaxMajor != nil {
		maxMajor = *a.MaxMajor
	}
	if a.MaxMinor != nil {
		maxMinor = *a.MaxMinor
	}
	return maxMajor, maxMinor
}

// Location loads the time zone. An empty timezone means time.Local.
func (a *Axis) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("axis %q: %w", a.Name, err)
	}
	return loc, nil
}

// Options translates the axis into engine options.
func (a *Axis) Options(logger *slog.Logger) ([]engine.Option, error) {
	attrs, err := scale.ParseAttributes(a.Attributes)
	if err != nil {
		return nil, fmt.Errorf("axis %q: %w", a.Name, err)
	}

	week0, err := calendar.ParseWeek0(a.Week0)
	if err != nil {
		return nil, fmt.Errorf("axis %q: %w", a.Name, err)
	}

	loc, err := a.Location()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithAttributes(attrs),
		engine.WithReference(a.Reference),
		engine.WithLocation(loc),
		engine.WithWeek0(week0),
		engine.WithLogger(logger),
	}
	if a.Margins != nil {
		opts = append(opts, engine.WithMargins(a.Margins.Lower, a.Margins.Upper))
	}
	if a.Base != 0 {
		opts = append(opts, engine.WithBase(a.Base))
	}
	if a.MaxWeeks != nil {
		opts = append(opts, engine.WithMaxWeeks(*a.MaxWeeks))
	}
	return opts, nil
}

// NewEngine builds the engine described by the axis. A nil logger means
// slog.Default().
func (a *Axis) NewEngine(logger *slog.Logger) (*engine.Engine, error) {
	kind, err := a.Kind()
	if err != nil {
		return nil, fmt.Errorf("axis %q: %w", a.Name, err)
	}
	opts, err := a.Options(logger)
	if err != nil {
		return nil, err
	}
	return engine.New(kind, opts...), nil
}

// Interval resolves the bounds. Date strings are parsed in loc for time
// axes; other axes only accept numbers.
func (a *Axis) Interval(kind engine.Kind, loc *time.Location) (scale.Interval, error) {
	lo, err := a.Min.Resolve(kind, loc)
	if err != nil {
		return scale.Interval{}, fmt.Errorf("axis %q: min: %w", a.Name, err)
	}
	hi, err := a.Max.Resolve(kind, loc)
	if err != nil {
		return scale.Interval{}, fmt.Errorf("axis %q: max: %w", a.Name, err)
	}
	return scale.NewInterval(lo, hi), nil
}

// Compute divides the axis interval.
func (a *Axis) Compute(logger *slog.Logger) (scale.Division, error) {
	e, err := a.NewEngine(logger)
	if err != nil {
		return scale.Division{}, err
	}
	iv, err := a.Interval(e.Kind(), e.Location())
	if err != nil {
		return scale.Division{}, err
	}
	maxMajor, maxMinor := a.Budget()
	return e.ComputeScale(iv, maxMajor, maxMinor, a.Step), nil
}

// dateLayouts are tried in order when a time bound is given as text.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Bound is an interval bound: a number, or a date string for time axes.
type Bound struct {
	Value float64
	Text  string
}

// Number returns a numeric bound.
func Number(v float64) Bound { return Bound{Value: v} }

// Date returns a textual bound.
func Date(s string) Bound { return Bound{Text: s} }

// Resolve returns the numeric value of the bound. Time bounds are
// milliseconds since the Unix epoch.
func (b Bound) Resolve(kind engine.Kind, loc *time.Location) (float64, error) {
	if b.Text == "" {
		if math.IsNaN(b.Value) {
			return 0, fmt.Errorf("bound is NaN")
		}
		return b.Value, nil
	}

	if v, err := strconv.ParseFloat(b.Text, 64); err == nil && !math.IsNaN(v) {
		return v, nil
	}
	if kind != engine.Time {
		return 0, fmt.Errorf("%q is not a number", b.Text)
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, b.Text, loc); err == nil {
			return calendar.ToValue(t), nil
		}
	}
	return 0, fmt.Errorf("%q is not a date", b.Text)
}

// String returns the bound as written.
func (b Bound) String() string {
	if b.Text != "" {
		return b.Text
	}
	return strconv.FormatFloat(b.Value, 'g', -1, 64)
}

// UnmarshalYAML accepts any scalar. Numbers are kept as values, everything
// else (dates in particular) as text.
func (b *Bound) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a scalar", n.Line)
	}
	*b = Bound{}
	switch n.ShortTag() {
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err == nil {
			b.Value = v
			return nil
		}
	}
	b.Text = n.Value
	return nil
}

// MarshalYAML writes numbers as numbers and dates as strings.
func (b Bound) MarshalYAML() (any, error) {
	if b.Text != "" {
		return b.Text, nil
	}
	return b.Value, nil
}

// UnmarshalJSON accepts a number or a string.
func (b *Bound) UnmarshalJSON(data []byte) error {
	*b = Bound{}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Text)
	}
	return json.Unmarshal(data, &b.Value)
}

// MarshalJSON writes numbers as numbers and dates as strings.
func (b Bound) MarshalJSON() ([]byte, error) {
	if b.Text != "" {
		return json.Marshal(b.Text)
	}
	return json.Marshal(b.Value)
}

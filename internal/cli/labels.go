package cli

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/roach88/scalediv/internal/calendar"
	"github.com/roach88/scalediv/internal/engine"
)

// maxFractionDigits caps the decimals printed for numeric labels.
const maxFractionDigits = 10

// Labeler turns tick values into display strings.
//
// Numbers are formatted for a language (grouping and decimal separators),
// with just enough decimals to tell the ticks of one level apart. Time
// ticks are formatted with the coarsest calendar unit they are all aligned
// to.
type Labeler struct {
	kind    engine.Kind
	printer *message.Printer
	loc     *time.Location
}

// NewLabeler creates a labeler. An empty lang means English; a nil loc
// means time.Local.
func NewLabeler(kind engine.Kind, lang string, loc *time.Location) (*Labeler, error) {
	tag := language.English
	if lang != "" {
		t, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}
		tag = t
	}
	if loc == nil {
		loc = time.Local
	}
	return &Labeler{
		kind:    kind,
		printer: message.NewPrinter(tag),
		loc:     loc,
	}, nil
}

// Labels formats one tick level.
func (l *Labeler) Labels(ticks []float64) []string {
	if l.kind == engine.Time {
		return l.times(ticks)
	}
	return l.numbers(ticks)
}

func (l *Labeler) numbers(ticks []float64) []string {
	digits := fractionDigits(ticks)
	labels := make([]string, len(ticks))
	for i, v := range ticks {
		labels[i] = l.printer.Sprintf("%v", number.Decimal(v,
			number.MinFractionDigits(digits),
			number.MaxFractionDigits(digits),
		))
	}
	return labels
}

func (l *Labeler) times(ticks []float64) []string {
	ts := make([]time.Time, len(ticks))
	for i, v := range ticks {
		ts[i], _ = calendar.ToTime(v, l.loc)
	}

	unit := labelUnit(ts)
	labels := make([]string, len(ts))
	for i, t := range ts {
		labels[i] = formatTime(t, unit)
	}
	return labels
}

// fractionDigits returns the fewest decimals that represent every tick
// to within 1e-6 of its last digit.
func fractionDigits(ticks []float64) int {
	for d := 0; d < maxFractionDigits; d++ {
		scale := math.Pow(10, float64(d))
		exact := true
		for _, v := range ticks {
			x := v * scale
			if math.Abs(x-math.Round(x)) > 1e-6 {
				exact = false
				break
			}
		}
		if exact {
			return d
		}
	}
	return maxFractionDigits
}

// labelUnit returns the coarsest unit all times are aligned to.
func labelUnit(ts []time.Time) calendar.Unit {
	if len(ts) == 0 {
		return calendar.Millisecond
	}

	aligned := func(ok func(time.Time) bool) bool {
		for _, t := range ts {
			if !ok(t) {
				return false
			}
		}
		return true
	}
	midnight := func(t time.Time) bool {
		return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
	}

	switch {
	case aligned(func(t time.Time) bool { return midnight(t) && t.Day() == 1 && t.Month() == time.January }):
		return calendar.Year
	case aligned(func(t time.Time) bool { return midnight(t) && t.Day() == 1 }):
		return calendar.Month
	case aligned(midnight):
		return calendar.Day
	case aligned(func(t time.Time) bool { return t.Second() == 0 && t.Nanosecond() == 0 }):
		return calendar.Minute
	case aligned(func(t time.Time) bool { return t.Nanosecond() == 0 }):
		return calendar.Second
	default:
		return calendar.Millisecond
	}
}

func formatTime(t time.Time, u calendar.Unit) string {
	switch u {
	case calendar.Year:
		if y := calendar.HistoricalYear(t); y < 0 {
			return fmt.Sprintf("%d BC", -y)
		}
		return fmt.Sprintf("%d", t.Year())
	case calendar.Month:
		return t.Format("2006-01")
	case calendar.Day, calendar.Week:
		return t.Format("2006-01-02")
	case calendar.Hour, calendar.Minute:
		return t.Format("2006-01-02 15:04")
	case calendar.Second:
		return t.Format("2006-01-02 15:04:05")
	default:
		return t.Format("15:04:05.000")
	}
}

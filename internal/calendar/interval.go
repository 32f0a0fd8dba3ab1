package calendar

import (
	"fmt"
	"math"
	"time"
)

// Interval is a pair of calendar timestamps.
//
// Min and Max are expected to share a location. Week0 selects the week
// numbering used when aligning to weeks.
type Interval struct {
	Min   time.Time
	Max   time.Time
	Week0 Week0Type
}

// NewInterval creates an interval with ISO week numbering.
func NewInterval(min, max time.Time) Interval {
	return Interval{Min: min, Max: max}
}

// FromValues creates an interval from two millisecond values in loc.
// ok is false when either bound had to be clamped into the supported range.
func FromValues(min, max float64, loc *time.Location) (Interval, bool) {
	t1, ok1 := ToTime(min, loc)
	t2, ok2 := ToTime(max, loc)
	return Interval{Min: t1, Max: t2}, ok1 && ok2
}

// Values returns both bounds in milliseconds since the epoch.
func (iv Interval) Values() (min, max float64) {
	return ToValue(iv.Min), ToValue(iv.Max)
}

// Width returns the distance from Min to Max in the given unit.
//
// Fixed units measure elapsed time. Day counts calendar days plus the
// fractional difference of the time of day, so a 23 hour day across a
// daylight-saving switch still counts as one day. Month and Year count
// calendar fields and ignore the day.
func (iv Interval) Width(u Unit) float64 {
	switch u {
	case Millisecond, Second, Minute, Hour:
		min, max := iv.Values()
		return (max - min) / u.Msecs()
	case Day, Week:
		days := float64(DaysBetween(iv.Min, iv.Max)) +
			(msecsOfDay(iv.Max)-msecsOfDay(iv.Min))/Day.Msecs()
		if u == Week {
			return days / 7
		}
		return days
	case Month:
		y1, m1, _ := iv.Min.Date()
		y2, m2, _ := iv.Max.Date()
		return float64((y2-y1)*12 + int(m2) - int(m1))
	case Year:
		return float64(iv.Max.Year() - iv.Min.Year())
	default:
		return 0
	}
}

// RoundedWidth returns the number of whole units spanned by the interval
// after flooring Min and ceiling Max to the unit.
func (iv Interval) RoundedWidth(u Unit) int {
	return int(math.Round(iv.Rounded(u).Width(u)))
}

// Rounded floors Min and ceils Max to the unit.
func (iv Interval) Rounded(u Unit) Interval {
	max, _ := Ceil(iv.Max, u)
	return Interval{
		Min:   Floor(iv.Min, u),
		Max:   max,
		Week0: iv.Week0,
	}
}

// Adjusted aligns Min down and Max up to multiples of step units counted
// from the start of the enclosing unit (see AlignDate). A non-positive step
// returns the interval unchanged.
func (iv Interval) Adjusted(step float64, u Unit) Interval {
	if step <= 0 || math.IsNaN(step) {
		return iv
	}
	return Interval{
		Min:   AlignDate(iv.Min, step, u, false, iv.Week0),
		Max:   AlignDate(iv.Max, step, u, true, iv.Week0),
		Week0: iv.Week0,
	}
}

// String implements fmt.Stringer.
func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s]", iv.Min.Format(time.RFC3339Nano), iv.Max.Format(time.RFC3339Nano))
}

// AlignDate moves t to a multiple of step units.
//
// Sub-day units count from the start of the enclosing unit (milliseconds
// within the second, seconds within the minute and so on). Days count from
// January 1st, weeks from the first day of week 1, months from January.
// Years are aligned to multiples of step on the astronomical year line.
//
// The date is moved backward, or forward when up is set. The result is
// clamped to the supported range.
func AlignDate(t time.Time, step float64, u Unit, up bool, week0 Week0Type) time.Time {
	if step <= 0 || math.IsNaN(step) {
		return t
	}

	if up {
		t, _ = Ceil(t, u)
	} else {
		t = Floor(t, u)
	}

	align := func(n float64) int {
		if up {
			return int(math.Ceil(n/step) * step)
		}
		return int(math.Floor(n/step) * step)
	}

	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	loc := t.Location()

	var out time.Time
	switch u {
	case Millisecond:
		ms := align(float64(t.Nanosecond() / 1e6))
		out = time.Date(y, m, d, hh, mm, ss, ms*1e6, loc)
	case Second:
		out = time.Date(y, m, d, hh, mm, align(float64(ss)), 0, loc)
	case Minute:
		out = time.Date(y, m, d, hh, align(float64(mm)), 0, 0, loc)
	case Hour:
		out = time.Date(y, m, d, align(float64(hh)), 0, 0, 0, loc)
	case Day:
		out = time.Date(y, time.January, 1+align(float64(t.YearDay()-1)), 0, 0, 0, 0, loc)
	case Week:
		w0 := DateOfWeek0(y, week0, loc)
		if t.Before(w0) {
			w0 = DateOfWeek0(y-1, week0, loc)
		}
		days := float64(DaysBetween(w0, t))
		out = w0.AddDate(0, 0, 7*align(days/7))
	case Month:
		out = time.Date(y, time.Month(1+align(float64(m-1))), 1, 0, 0, 0, 0, loc)
	case Year:
		out = time.Date(align(float64(y)), time.January, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}

	out, _ = Clamp(out)
	return out
}

func msecsOfDay(t time.Time) float64 {
	hh, mm, ss := t.Clock()
	return float64(((hh*60+mm)*60+ss)*1000 + t.Nanosecond()/1e6)
}

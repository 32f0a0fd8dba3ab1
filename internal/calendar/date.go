package calendar

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Supported date range. MinDate is the start of the Julian Day count;
// MaxDate is the last day representable by the Julian Day range of common
// date libraries.
var (
	MinDate = time.Date(-4713, time.November, 24, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(5874898, time.December, 31, 23, 59, 59, 999e6, time.UTC)
)

// MinValue and MaxValue are MinDate and MaxDate on the millisecond timeline.
var (
	MinValue = ToValue(MinDate)
	MaxValue = ToValue(MaxDate)
)

// Week0Type selects how the first week of a year is determined.
type Week0Type int

const (
	// FirstThursday follows ISO 8601: week 1 contains the first Thursday.
	FirstThursday Week0Type = iota

	// FirstDay makes the week containing January 1st the first week.
	FirstDay
)

// String implements fmt.Stringer.
func (w Week0Type) String() string {
	if w == FirstDay {
		return "first_day"
	}
	return "first_thursday"
}

// ParseWeek0 parses "first_thursday" (or "iso") and "first_day".
func ParseWeek0(s string) (Week0Type, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "", "first_thursday", "iso":
		return FirstThursday, nil
	case "first_day":
		return FirstDay, nil
	default:
		return FirstThursday, fmt.Errorf("unknown week0 type %q", s)
	}
}

// ToValue converts t to milliseconds since the Unix epoch.
func ToValue(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// ToTime converts milliseconds since the Unix epoch to a time in loc.
// A nil loc means time.Local. Values outside the supported range, and NaN,
// are clamped to the nearest bound and reported with ok=false.
func ToTime(value float64, loc *time.Location) (t time.Time, ok bool) {
	if loc == nil {
		loc = time.Local
	}

	switch {
	case math.IsNaN(value):
		return MinDate.In(loc), false
	case value <= MinValue:
		return MinDate.In(loc), value == MinValue
	case value >= MaxValue:
		return MaxDate.In(loc), value == MaxValue
	}

	t = time.UnixMilli(int64(math.Round(value))).In(loc)
	return Clamp(t)
}

// InRange reports whether t lies inside [MinDate, MaxDate].
func InRange(t time.Time) bool {
	return !t.Before(MinDate) && !t.After(MaxDate)
}

// Clamp limits t to [MinDate, MaxDate], keeping its location.
func Clamp(t time.Time) (time.Time, bool) {
	if t.Before(MinDate) {
		return MinDate.In(t.Location()), false
	}
	if t.After(MaxDate) {
		return MaxDate.In(t.Location()), false
	}
	return t, true
}

// Floor returns the start of the unit containing t.
// Weeks start on Monday.
func Floor(t time.Time, u Unit) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	loc := t.Location()

	switch u {
	case Millisecond:
		return time.Date(y, m, d, hh, mm, ss, t.Nanosecond()/1e6*1e6, loc)
	case Second:
		return time.Date(y, m, d, hh, mm, ss, 0, loc)
	case Minute:
		return time.Date(y, m, d, hh, mm, 0, 0, loc)
	case Hour:
		return time.Date(y, m, d, hh, 0, 0, 0, loc)
	case Day:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Week:
		day := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return day.AddDate(0, 0, -daysSinceMonday(day))
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}

// Ceil returns the start of the next unit, or t itself when t already lies
// on a unit boundary. ok is false when the result had to be clamped.
func Ceil(t time.Time, u Unit) (time.Time, bool) {
	f := Floor(t, u)
	if f.Equal(t) {
		return t, true
	}
	return AddUnits(f, 1, u)
}

// AddUnits adds n units to t.
//
// Fixed units are added as durations. Day and Week change the day field,
// Month and Year the month and year fields, clamping the day to the length
// of the target month. ok is false when the result left the supported range.
func AddUnits(t time.Time, n int, u Unit) (time.Time, bool) {
	switch u {
	case Millisecond, Second, Minute, Hour:
		return AddMsecs(t, float64(n)*u.Msecs())
	case Day:
		return Clamp(t.AddDate(0, 0, n))
	case Week:
		return Clamp(t.AddDate(0, 0, 7*n))
	case Month:
		return Clamp(AddMonths(t, n))
	case Year:
		return Clamp(AddMonths(t, 12*n))
	default:
		return t, false
	}
}

// AddMsecs adds a fixed duration given in milliseconds.
func AddMsecs(t time.Time, msecs float64) (time.Time, bool) {
	return ToTime(ToValue(t)+msecs, t.Location())
}

// AddMonths adds n months by calendar field. If the day does not exist in
// the target month it is clamped to the last day of that month.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	y += floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)

	if dim := DaysInMonth(y, month); d > dim {
		d = dim
	}
	hh, mm, ss := t.Clock()
	return time.Date(y, month, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of days of the month in year y.
func DaysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOfWeek0 returns the first day of week 1 of the given year.
func DateOfWeek0(year int, wt Week0Type, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	off := daysSinceMonday(jan1)
	d := jan1.AddDate(0, 0, -off)
	if wt == FirstThursday && off > 3 {
		// Jan 1st is a Friday, Saturday or Sunday; week 1 starts after it.
		d = d.AddDate(0, 0, 7)
	}
	return d
}

// HistoricalYear returns the year of t without a year zero:
// astronomical year 0 is 1 BC (-1), year -1 is 2 BC (-2) and so on.
func HistoricalYear(t time.Time) int {
	y := t.Year()
	if y <= 0 {
		return y - 1
	}
	return y
}

// UTCOffset returns the offset of t's zone from UTC in seconds.
func UTCOffset(t time.Time) int {
	_, off := t.Zone()
	return off
}

// DaysBetween returns the number of calendar days from a's date to b's date,
// ignoring the time of day.
func DaysBetween(a, b time.Time) int {
	return dayNumber(b) - dayNumber(a)
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

package calendar

import (
	"fmt"
	"strings"
)

// Unit is a calendar granularity. Units are ordered from finest to coarsest.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

// Nominal lengths in milliseconds. Month and Year are approximations used
// only where a single number is needed (thresholds, step hints).
var unitMsecs = [...]float64{
	Millisecond: 1,
	Second:      1000,
	Minute:      60 * 1000,
	Hour:        3600 * 1000,
	Day:         24 * 3600 * 1000,
	Week:        7 * 24 * 3600 * 1000,
	Month:       30 * 24 * 3600 * 1000,
	Year:        365 * 24 * 3600 * 1000,
}

// Units lists all units from finest to coarsest.
var Units = []Unit{Millisecond, Second, Minute, Hour, Day, Week, Month, Year}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool {
	return u >= Millisecond && u <= Year
}

// String implements fmt.Stringer.
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// Msecs returns the nominal length of the unit in milliseconds.
func (u Unit) Msecs() float64 {
	if !u.Valid() {
		return 0
	}
	return unitMsecs[u]
}

// Fixed reports whether the unit has a fixed duration.
func (u Unit) Fixed() bool {
	return u <= Hour
}

// ParseUnit parses a unit name. Plural forms are accepted.
func ParseUnit(s string) (Unit, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for u, name := range unitNames {
		if name == key {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("unknown calendar unit %q", s)
}

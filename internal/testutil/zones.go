package testutil

import (
	"testing"
	"time"
)

// Location loads a time zone or fails the test. Tests use it instead of
// time.Local so results do not depend on the machine.
func Location(t testing.TB, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %q: %v", name, err)
	}
	return loc
}

// Date returns midnight of the given day in loc.
func Date(loc *time.Location, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

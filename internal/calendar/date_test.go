package calendar

import (
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestToTime_RoundTrip(t *testing.T) {
	ts := time.Date(2024, time.March, 10, 12, 34, 56, 789e6, time.UTC)

	got, ok := ToTime(ToValue(ts), time.UTC)
	require.True(t, ok)
	assert.True(t, got.Equal(ts))
	assert.Equal(t, time.UTC, got.Location())

	assert.Equal(t, 0.0, ToValue(time.Unix(0, 0)))
}

func TestToTime_ClampsOutOfRange(t *testing.T) {
	got, ok := ToTime(MaxValue*2, time.UTC)
	assert.False(t, ok)
	assert.True(t, got.Equal(MaxDate))

	got, ok = ToTime(-math.MaxFloat64, time.UTC)
	assert.False(t, ok)
	assert.True(t, got.Equal(MinDate))

	got, ok = ToTime(math.NaN(), time.UTC)
	assert.False(t, ok)
	assert.True(t, got.Equal(MinDate))

	_, ok = ToTime(MinValue, time.UTC)
	assert.True(t, ok)
}

func TestToTime_NilLocationIsLocal(t *testing.T) {
	got, ok := ToTime(0, nil)
	require.True(t, ok)
	assert.Equal(t, time.Local, got.Location())
}

func TestFloor(t *testing.T) {
	ts := time.Date(2024, time.May, 15, 13, 47, 29, 123456789, time.UTC)

	tests := []struct {
		unit Unit
		want time.Time
	}{
		{Millisecond, time.Date(2024, time.May, 15, 13, 47, 29, 123e6, time.UTC)},
		{Second, utc(2024, time.May, 15, 13, 47, 29)},
		{Minute, utc(2024, time.May, 15, 13, 47, 0)},
		{Hour, utc(2024, time.May, 15, 13, 0, 0)},
		{Day, utc(2024, time.May, 15, 0, 0, 0)},
		{Week, utc(2024, time.May, 13, 0, 0, 0)}, // Monday
		{Month, utc(2024, time.May, 1, 0, 0, 0)},
		{Year, utc(2024, time.January, 1, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Floor(ts, tt.unit))
		})
	}
}

func TestCeil(t *testing.T) {
	ts := utc(2024, time.May, 15, 13, 47, 29)

	got, ok := Ceil(ts, Month)
	require.True(t, ok)
	assert.Equal(t, utc(2024, time.June, 1, 0, 0, 0), got)

	got, ok = Ceil(ts, Week)
	require.True(t, ok)
	assert.Equal(t, utc(2024, time.May, 20, 0, 0, 0), got)

	// already on a boundary
	boundary := utc(2024, time.June, 1, 0, 0, 0)
	got, ok = Ceil(boundary, Month)
	require.True(t, ok)
	assert.Equal(t, boundary, got)

	// beyond the supported range
	_, ok = Ceil(MaxDate, Year)
	assert.False(t, ok)
}

func TestAddMonths_ClampsDay(t *testing.T) {
	jan31 := utc(2023, time.January, 31, 10, 0, 0)

	assert.Equal(t, utc(2023, time.February, 28, 10, 0, 0), AddMonths(jan31, 1))
	assert.Equal(t, utc(2024, time.February, 29, 10, 0, 0), AddMonths(jan31, 13))
	assert.Equal(t, utc(2022, time.December, 31, 10, 0, 0), AddMonths(jan31, -1))
	assert.Equal(t, utc(2021, time.November, 30, 10, 0, 0), AddMonths(jan31, -14))
}

func TestAddUnits(t *testing.T) {
	ts := utc(2024, time.February, 29, 6, 0, 0)

	tests := []struct {
		unit Unit
		n    int
		want time.Time
	}{
		{Second, 90, utc(2024, time.February, 29, 6, 1, 30)},
		{Minute, -30, utc(2024, time.February, 29, 5, 30, 0)},
		{Hour, 20, utc(2024, time.March, 1, 2, 0, 0)},
		{Day, 1, utc(2024, time.March, 1, 6, 0, 0)},
		{Week, 2, utc(2024, time.March, 14, 6, 0, 0)},
		{Month, 12, utc(2025, time.February, 28, 6, 0, 0)},
		{Year, 4, utc(2028, time.February, 29, 6, 0, 0)},
		{Year, 1, utc(2025, time.February, 28, 6, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			got, ok := AddUnits(ts, tt.n, tt.unit)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddUnits_Overflow(t *testing.T) {
	got, ok := AddUnits(MaxDate, 1, Year)
	assert.False(t, ok)
	assert.True(t, got.Equal(MaxDate))

	got, ok = AddUnits(MinDate, -1, Day)
	assert.False(t, ok)
	assert.True(t, got.Equal(MinDate))
}

func TestAddUnits_DaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is 23 hours long in New York.
	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, ny)

	day, ok := AddUnits(start, 1, Day)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, ny), day)
	assert.Equal(t, 23*time.Hour, day.Sub(start))

	hours, ok := AddUnits(start, 24, Hour)
	require.True(t, ok)
	assert.Equal(t, 1, hours.Hour(), "fixed durations ignore the wall clock")
}

func TestDateOfWeek0(t *testing.T) {
	// 2021-01-01 is a Friday: ISO week 1 starts on Monday 2021-01-04.
	assert.Equal(t, utc(2021, time.January, 4, 0, 0, 0), DateOfWeek0(2021, FirstThursday, time.UTC))
	assert.Equal(t, utc(2020, time.December, 28, 0, 0, 0), DateOfWeek0(2021, FirstDay, time.UTC))

	// 2020-01-01 is a Wednesday: both variants start on 2019-12-30.
	assert.Equal(t, utc(2019, time.December, 30, 0, 0, 0), DateOfWeek0(2020, FirstThursday, time.UTC))
	assert.Equal(t, utc(2019, time.December, 30, 0, 0, 0), DateOfWeek0(2020, FirstDay, time.UTC))
}

func TestParseWeek0(t *testing.T) {
	w, err := ParseWeek0("first-day")
	require.NoError(t, err)
	assert.Equal(t, FirstDay, w)

	w, err = ParseWeek0("")
	require.NoError(t, err)
	assert.Equal(t, FirstThursday, w)

	_, err = ParseWeek0("sunday")
	assert.Error(t, err)
}

func TestHistoricalYear(t *testing.T) {
	assert.Equal(t, 2024, HistoricalYear(utc(2024, time.January, 1, 0, 0, 0)))
	assert.Equal(t, 1, HistoricalYear(utc(1, time.January, 1, 0, 0, 0)))
	assert.Equal(t, -1, HistoricalYear(utc(0, time.January, 1, 0, 0, 0)))
	assert.Equal(t, -44, HistoricalYear(utc(-43, time.March, 15, 0, 0, 0)))
}

func TestUTCOffset(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	assert.Equal(t, -5*3600, UTCOffset(time.Date(2024, time.January, 15, 12, 0, 0, 0, ny)))
	assert.Equal(t, -4*3600, UTCOffset(time.Date(2024, time.July, 15, 12, 0, 0, 0, ny)))
	assert.Equal(t, 0, UTCOffset(time.Now().UTC()))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 366, DaysBetween(utc(2024, time.January, 1, 23, 0, 0), utc(2025, time.January, 1, 1, 0, 0)))
	assert.Equal(t, -1, DaysBetween(utc(2024, time.January, 1, 0, 0, 0), utc(2023, time.December, 31, 0, 0, 0)))
}

func TestMinMaxDate(t *testing.T) {
	assert.True(t, InRange(MinDate))
	assert.True(t, InRange(MaxDate))
	assert.False(t, InRange(MaxDate.Add(time.Millisecond)))
	assert.Less(t, MinValue, 0.0)
	assert.Greater(t, MaxValue, 0.0)
}

func TestUnit(t *testing.T) {
	u, err := ParseUnit("Months")
	require.NoError(t, err)
	assert.Equal(t, Month, u)

	_, err = ParseUnit("fortnight")
	assert.Error(t, err)

	assert.Equal(t, "Unit(42)", Unit(42).String())
	assert.Equal(t, 3600000.0, Hour.Msecs())
	assert.True(t, Hour.Fixed())
	assert.False(t, Day.Fixed())
	assert.Len(t, Units, 8)
}

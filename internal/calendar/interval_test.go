package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Width(t *testing.T) {
	iv := NewInterval(
		utc(2020, time.January, 1, 0, 0, 0),
		utc(2022, time.December, 31, 12, 0, 0),
	)

	assert.Equal(t, 2.0, iv.Width(Year))
	assert.Equal(t, 35.0, iv.Width(Month))
	assert.Equal(t, 1095.5, iv.Width(Day))
	assert.InDelta(t, 1095.5/7, iv.Width(Week), 1e-12)
	assert.Equal(t, 1095.5*24, iv.Width(Hour))
}

func TestInterval_WidthAcrossDaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	iv := NewInterval(
		time.Date(2024, time.March, 10, 0, 0, 0, 0, ny),
		time.Date(2024, time.March, 11, 0, 0, 0, 0, ny),
	)

	assert.Equal(t, 1.0, iv.Width(Day))
	assert.Equal(t, 23.0, iv.Width(Hour))
}

func TestInterval_RoundedWidth(t *testing.T) {
	// Partially spanned units count as whole units.
	iv := NewInterval(
		utc(2024, time.January, 1, 10, 0, 0),
		utc(2024, time.January, 3, 2, 0, 0),
	)

	assert.Equal(t, 3, iv.RoundedWidth(Day))
	assert.Equal(t, 40, iv.RoundedWidth(Hour))
	assert.Equal(t, 1, iv.RoundedWidth(Month))
	assert.Equal(t, 1, iv.RoundedWidth(Week))
}

func TestInterval_Rounded(t *testing.T) {
	iv := NewInterval(
		utc(2024, time.May, 15, 13, 0, 0),
		utc(2024, time.August, 2, 0, 0, 0),
	)

	r := iv.Rounded(Month)
	assert.Equal(t, utc(2024, time.May, 1, 0, 0, 0), r.Min)
	assert.Equal(t, utc(2024, time.September, 1, 0, 0, 0), r.Max)
}

func TestInterval_Adjusted(t *testing.T) {
	tests := []struct {
		name     string
		min, max time.Time
		step     float64
		unit     Unit
		wantMin  time.Time
		wantMax  time.Time
	}{
		{
			name:    "months from january",
			min:     utc(2024, time.May, 1, 0, 0, 0),
			max:     utc(2024, time.September, 1, 0, 0, 0),
			step:    3,
			unit:    Month,
			wantMin: utc(2024, time.April, 1, 0, 0, 0),
			wantMax: utc(2024, time.October, 1, 0, 0, 0),
		},
		{
			name:    "days from start of year",
			min:     utc(2024, time.January, 2, 0, 0, 0),
			max:     utc(2024, time.January, 15, 0, 0, 0),
			step:    2,
			unit:    Day,
			wantMin: utc(2024, time.January, 1, 0, 0, 0),
			wantMax: utc(2024, time.January, 15, 0, 0, 0),
		},
		{
			name:    "hours within the day",
			min:     utc(2024, time.January, 1, 5, 0, 0),
			max:     utc(2024, time.January, 1, 19, 0, 0),
			step:    6,
			unit:    Hour,
			wantMin: utc(2024, time.January, 1, 0, 0, 0),
			wantMax: utc(2024, time.January, 2, 0, 0, 0),
		},
		{
			name:    "minutes within the hour",
			min:     utc(2024, time.January, 1, 5, 7, 0),
			max:     utc(2024, time.January, 1, 5, 41, 0),
			step:    15,
			unit:    Minute,
			wantMin: utc(2024, time.January, 1, 5, 0, 0),
			wantMax: utc(2024, time.January, 1, 5, 45, 0),
		},
		{
			name:    "years on multiples",
			min:     utc(1993, time.January, 1, 0, 0, 0),
			max:     utc(2017, time.January, 1, 0, 0, 0),
			step:    10,
			unit:    Year,
			wantMin: utc(1990, time.January, 1, 0, 0, 0),
			wantMax: utc(2020, time.January, 1, 0, 0, 0),
		},
		{
			name:    "weeks from week one",
			min:     utc(2024, time.January, 8, 0, 0, 0),
			max:     utc(2024, time.February, 5, 0, 0, 0),
			step:    2,
			unit:    Week,
			wantMin: utc(2024, time.January, 1, 0, 0, 0),
			wantMax: utc(2024, time.February, 12, 0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewInterval(tt.min, tt.max).Adjusted(tt.step, tt.unit)
			assert.Equal(t, tt.wantMin, got.Min)
			assert.Equal(t, tt.wantMax, got.Max)
		})
	}
}

func TestInterval_AdjustedNonPositiveStep(t *testing.T) {
	iv := NewInterval(utc(2024, time.May, 3, 0, 0, 0), utc(2024, time.May, 9, 0, 0, 0))
	assert.Equal(t, iv, iv.Adjusted(0, Day))
	assert.Equal(t, iv, iv.Adjusted(-1, Day))
}

func TestAlignDate_WeekBeforeWeekOne(t *testing.T) {
	// 2021-01-02 belongs to the last ISO week of 2020.
	got := AlignDate(utc(2021, time.January, 2, 0, 0, 0), 1, Week, false, FirstThursday)
	assert.Equal(t, utc(2020, time.December, 28, 0, 0, 0), got)
}

func TestAlignDate_ClampsToRange(t *testing.T) {
	got := AlignDate(MaxDate, 1000, Year, true, FirstThursday)
	assert.True(t, got.Equal(MaxDate))
}

func TestFromValues(t *testing.T) {
	min := utc(2024, time.January, 1, 0, 0, 0)
	max := utc(2024, time.January, 2, 0, 0, 0)

	iv, ok := FromValues(ToValue(min), ToValue(max), time.UTC)
	require.True(t, ok)
	assert.True(t, iv.Min.Equal(min))
	assert.True(t, iv.Max.Equal(max))

	v1, v2 := iv.Values()
	assert.Equal(t, ToValue(min), v1)
	assert.Equal(t, ToValue(max), v2)

	_, ok = FromValues(0, MaxValue*2, time.UTC)
	assert.False(t, ok)
}

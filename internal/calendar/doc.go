// Package calendar converts between a linear millisecond timeline and
// calendar dates, and provides the unit arithmetic used by time scales.
//
// Values are milliseconds since the Unix epoch, interpreted in a
// *time.Location. Dates use the proleptic Gregorian calendar with
// astronomical year numbering: year 0 exists and precedes year 1. Use
// HistoricalYear to present years in the no-year-zero convention.
//
// Arithmetic follows two rules:
//
//   - Millisecond, Second, Minute and Hour steps are fixed durations.
//   - Day, Week, Month and Year steps change calendar fields, so a month is
//     28 to 31 days long and a day may be 23 or 25 hours long across a
//     daylight-saving transition.
//
// The supported range is [MinDate, MaxDate]. Operations that would leave it
// clamp to the nearest bound and report ok=false.
package calendar

package engine

import (
	"math"
	"time"

	"github.com/roach88/scalediv/internal/calendar"
	"github.com/roach88/scalediv/internal/scale"
)

// degenerateMsecs is the half width of the interval synthesized around a
// single instant.
const degenerateMsecs = 500

// Step tables. A step in a unit is chosen from its table; minor steps are
// exact divisors taken from the tables of the same or the next finer unit.
var (
	secondLimits     = []int{1, 2, 5, 10, 15, 20, 30, 60}
	hourLimits       = []int{1, 2, 3, 4, 6, 12, 24}
	weekLimits       = []int{1, 2, 4, 8, 12, 26, 52}
	monthLimits      = []int{1, 2, 3, 4, 6, 12}
	hourMinorLimits  = []int{1, 2, 3, 4, 6, 12, 24, 48, 72}
	dayMinorLimits   = []int{1, 2, 3, 7, 14, 28}
	unitSecs         = map[calendar.Unit]float64{calendar.Second: 1, calendar.Minute: 60, calendar.Hour: 3600, calendar.Day: 86400, calendar.Week: 604800}
	monthMinorBudget = []struct {
		minSteps int
		days     int
	}{
		{30, 1},
		{6, 5},
		{3, 10},
	}
)

// timePrepare applies margins and attributes to a time interval without
// aligning it. Calendar alignment happens inside the division.
func (e *Engine) timePrepare(iv scale.Interval) scale.Interval {
	iv = iv.Normalized()

	iv.Min -= e.lowerMargin
	iv.Max += e.upperMargin

	if e.attrs.Has(scale.Symmetric) {
		iv = iv.Symmetrize(e.reference)
	}
	if e.attrs.Has(scale.IncludeReference) {
		iv = iv.Extend(e.reference)
	}
	if iv.Width() == 0 {
		iv = scale.NewInterval(iv.Min-degenerateMsecs, iv.Max+degenerateMsecs)
	}

	iv = e.timeLimited(iv)

	if e.attrs.Has(scale.Inverted) {
		iv = iv.Swapped()
	}
	return iv
}

// timeLimited clamps an ordered interval into the supported calendar range.
func (e *Engine) timeLimited(iv scale.Interval) scale.Interval {
	if iv.Min >= calendar.MinValue && iv.Max <= calendar.MaxValue {
		return iv
	}
	out := iv.Limited(calendar.MinValue, calendar.MaxValue)
	e.logger.Warn("time interval clamped to the calendar range",
		"interval", iv.String(),
		"clamped", out.String())
	return out
}

// timeAutoScale widens [x1, x2] to multiples of a step in the selected unit
// and rounds the result to unit boundaries. The step is in milliseconds.
func (e *Engine) timeAutoScale(maxSteps int, x1, x2 float64) (float64, float64, float64) {
	maxSteps = max(maxSteps, 1)

	iv := e.timePrepare(scale.NewInterval(x1, x2)).Normalized()

	unit := e.selectUnit(iv.Min, iv.Max, maxSteps)
	civ := e.calendarInterval(iv.Min, iv.Max)

	step := scale.DivideInterval(civ.Width(unit), maxSteps, scale.DefaultBase) * unit.Msecs()

	if step != 0 && !e.attrs.Has(scale.Floating) {
		aligned := alignLinear(iv, step)
		aligned = e.timeLimited(aligned)

		r := e.calendarInterval(aligned.Min, aligned.Max).Rounded(unit)
		rmin, rmax := r.Values()
		iv = scale.NewInterval(rmin, rmax)
	}

	x1, x2 = iv.Min, iv.Max
	if e.attrs.Has(scale.Inverted) {
		x1, x2 = x2, x1
		step = -step
	}
	return x1, x2, step
}

// timeDivideScale lays out calendar ticks on [x1, x2].
//
// A non-zero step (milliseconds) is only a hint: it sets the major budget
// to the number of such steps, because units from days upward are not
// equidistant.
func (e *Engine) timeDivideScale(x1, x2 float64, maxMajor, maxMinor int, step float64) scale.Division {
	step = math.Abs(step)

	iv := e.timeLimited(scale.NewInterval(x1, x2).Normalized())
	lo, hi := iv.Min, iv.Max

	if lo == hi {
		return scale.NewDivision(x1, x2, nil, nil, []float64{lo})
	}

	if step > 0 {
		maxMajor = int(math.Min(math.Ceil((hi-lo)/step), maxTicks))
		maxMajor = max(maxMajor, 1)
	}

	unit := e.selectUnit(lo, hi, maxMajor)

	var div scale.Division
	if unit == calendar.Millisecond {
		div = e.linear().linearDivideScale(lo, hi, maxMajor, maxMinor, step)
	} else {
		div = e.divideTo(lo, hi, maxMajor, maxMinor, unit)
	}

	if x1 > x2 {
		div = div.Inverted()
	}
	return div
}

// selectUnit returns the coarsest unit whose ticks fit into maxSteps.
func (e *Engine) selectUnit(lo, hi float64, maxSteps int) calendar.Unit {
	i0 := float64(maxSteps) * calendar.Year.Msecs()
	if lo < 0 && hi > 0 {
		// avoid hi - lo overflowing
		if hi-i0 > lo {
			return calendar.Year
		}
	} else if hi-lo > i0 {
		return calendar.Year
	}

	iv := e.calendarInterval(lo, hi)

	months := iv.RoundedWidth(calendar.Month)
	if months > maxSteps*6 {
		return calendar.Year
	}

	days := iv.RoundedWidth(calendar.Day)
	weeks := iv.RoundedWidth(calendar.Week)

	if weeks > e.maxWeeks && days > 4*maxSteps*7 {
		return calendar.Month
	}

	if days > maxSteps*7 {
		return calendar.Week
	}

	hours := iv.RoundedWidth(calendar.Hour)
	if hours > maxSteps*24 {
		return calendar.Day
	}

	seconds := iv.RoundedWidth(calendar.Second)

	switch {
	case seconds >= maxSteps*3600:
		return calendar.Hour
	case seconds >= maxSteps*60:
		return calendar.Minute
	case seconds >= maxSteps:
		return calendar.Second
	default:
		return calendar.Millisecond
	}
}

// divideTo divides [lo, hi] in steps of the given unit.
func (e *Engine) divideTo(lo, hi float64, maxMajor, maxMinor int, unit calendar.Unit) scale.Division {
	iv := e.calendarInterval(lo, hi).Rounded(unit)

	step := divideWithinUnit(iv.Width(unit), maxMajor, unit)

	iv = iv.Adjusted(step, unit)

	var div scale.Division
	switch {
	case unit <= calendar.Week:
		var minStep float64
		if maxMinor > 1 {
			minStep = divideMajorStep(step, maxMinor, unit)
		}

		secs := unitSecs[unit]

		dst := unit > calendar.Hour
		if unit == calendar.Hour {
			dst = step > 1
		}

		div = e.fixedTicks(iv, step*secs, minStep*secs, dst)
	case unit == calendar.Month:
		div = e.monthTicks(iv, step, maxMinor)
	default:
		div = e.yearTicks(iv, step, maxMinor)
	}

	// the ticks were built on an interval widened to the step
	return div.Bounded(lo, hi)
}

// fixedTicks steps through iv with a fixed duration. With dst set every
// tick is shifted by the change of the UTC offset since iv.Min, so that
// ticks stay on the same wall-clock time.
func (e *Engine) fixedTicks(iv calendar.Interval, stepSecs, minStepSecs float64, dst bool) scale.Division {
	off0 := calendar.UTCOffset(iv.Min)
	minV, maxV := iv.Values()

	stepMs := stepSecs * 1000
	minStepMs := minStepSecs * 1000

	correct := func(t time.Time) float64 {
		v := calendar.ToValue(t)
		if dst {
			v += float64(off0-calendar.UTCOffset(t)) * 1000
		}
		return v
	}

	var major, medium, minor []float64

	numSteps := 0
	if minStepMs > 0 {
		numSteps = int(math.Floor(stepMs/minStepMs + scale.Eps))
	}

	for i := 0; i < maxTicks; i++ {
		dt, ok := calendar.AddMsecs(iv.Min, float64(i)*stepMs)
		if !ok {
			e.logger.Debug("tick generation stopped at the calendar range", "ticks", len(major))
			break
		}

		// A corrected tick can still be inside when the step crosses the
		// start of daylight saving time.
		v := correct(dt)
		if dt.After(iv.Max) && v > maxV {
			break
		}

		if len(major) == 0 || major[len(major)-1] != v {
			major = append(major, v)
		}

		for j := 1; j < numSteps; j++ {
			mt, ok := calendar.AddMsecs(dt, math.Round(float64(j)*minStepMs))
			if !ok {
				break
			}

			mv := correct(mt)
			if len(minor) > 0 && minor[len(minor)-1] == mv {
				continue
			}

			if numSteps%2 == 0 && j != 1 && j == numSteps/2 {
				medium = append(medium, mv)
			} else {
				minor = append(minor, mv)
			}
		}
	}

	return scale.NewDivision(minV, maxV, minor, medium, major)
}

// monthTicks steps through iv by calendar months.
//
// With a one month step the minor ticks are day offsets whose spacing
// follows the minor budget; the 15th day offset becomes a medium tick
// unless it is the only one. Larger steps are split into whole months.
func (e *Engine) monthTicks(iv calendar.Interval, step float64, maxMinor int) scale.Division {
	months := int(step)

	minStepDays := 0
	minStep := 0.0

	if maxMinor > 1 {
		if months == 1 {
			minStepDays = 15
			for _, b := range monthMinorBudget {
				if maxMinor >= b.minSteps {
					minStepDays = b.days
					break
				}
			}
		} else {
			minStep = divideMajorStep(step, maxMinor, calendar.Month)
		}
	}

	var major, medium, minor []float64

	for i := 0; i < maxTicks; i++ {
		dt, ok := calendar.AddUnits(iv.Min, i*months, calendar.Month)
		if !ok || dt.After(iv.Max) {
			if !ok {
				e.logger.Debug("tick generation stopped at the calendar range", "ticks", len(major))
			}
			break
		}

		major = append(major, calendar.ToValue(dt))

		switch {
		case minStepDays > 0:
			next, _ := calendar.AddUnits(dt, months, calendar.Month)
			for days := minStepDays; days < 30; days += minStepDays {
				tick, ok := calendar.AddUnits(dt, days, calendar.Day)
				if !ok || !tick.Before(next) {
					break
				}
				if days == 15 && minStepDays != 15 {
					medium = append(medium, calendar.ToValue(tick))
				} else {
					minor = append(minor, calendar.ToValue(tick))
				}
			}
		case minStep > 0:
			numMinor := int(math.Round(step / minStep))
			for j := 1; j < numMinor; j++ {
				tick, ok := calendar.AddUnits(dt, int(math.Round(float64(j)*minStep)), calendar.Month)
				if !ok {
					break
				}
				if numMinor%2 == 0 && j == numMinor/2 {
					medium = append(medium, calendar.ToValue(tick))
				} else {
					minor = append(minor, calendar.ToValue(tick))
				}
			}
		}
	}

	minV, maxV := iv.Values()
	return scale.NewDivision(minV, maxV, minor, medium, major)
}

// yearTicks steps through iv by calendar years. Minor ticks are whole
// months.
func (e *Engine) yearTicks(iv calendar.Interval, step float64, maxMinor int) scale.Division {
	years := int(step)

	minStep := 0.0
	if maxMinor > 1 {
		minStep = divideMajorStep(step, maxMinor, calendar.Year)
	}

	numMinor := 0
	if minStep > 0 {
		numMinor = int(math.Floor(step/minStep + scale.Eps))
	}

	var major, medium, minor []float64

	for i := 0; i < maxTicks; i++ {
		dt, ok := calendar.AddUnits(iv.Min, i*years, calendar.Year)
		if !ok || dt.After(iv.Max) {
			if !ok {
				e.logger.Debug("tick generation stopped at the calendar range", "ticks", len(major))
			}
			break
		}

		major = append(major, calendar.ToValue(dt))

		for j := 1; j < numMinor; j++ {
			months := int(math.Round(float64(j) * minStep * 12))
			tick, ok := calendar.AddUnits(dt, months, calendar.Month)
			if !ok {
				break
			}

			if numMinor > 2 && numMinor%2 == 0 && j == numMinor/2 {
				medium = append(medium, calendar.ToValue(tick))
			} else {
				minor = append(minor, calendar.ToValue(tick))
			}
		}
	}

	minV, maxV := iv.Values()
	return scale.NewDivision(minV, maxV, minor, medium, major)
}

func (e *Engine) calendarInterval(lo, hi float64) calendar.Interval {
	iv, _ := calendar.FromValues(lo, hi, e.loc)
	iv.Week0 = e.week0
	return iv
}

// divideWithinUnit picks the major step, in units, for an interval that is
// size units wide.
func divideWithinUnit(size float64, numSteps int, unit calendar.Unit) float64 {
	n := float64(numSteps)

	if unit != calendar.Day && size > n && size <= 2*n {
		return 2
	}

	switch unit {
	case calendar.Second, calendar.Minute:
		return float64(tableStep(size, numSteps, secondLimits))
	case calendar.Hour:
		return float64(tableStep(size, numSteps, hourLimits))
	case calendar.Day:
		v := size / n
		if v <= 5 {
			return math.Ceil(v)
		}
		return math.Ceil(v/7) * 7
	case calendar.Week:
		return float64(tableStep(size, numSteps, weekLimits))
	case calendar.Month:
		return float64(tableStep(size, numSteps, monthLimits))
	case calendar.Year:
		step := scale.DivideInterval(size, numSteps, scale.DefaultBase)
		return math.Max(1, math.Ceil(step))
	default:
		return scale.DivideInterval(size, numSteps, scale.DefaultBase)
	}
}

// tableStep returns the first limit that is not below size/numSteps, or
// the last limit.
func tableStep(size float64, numSteps int, limits []int) int {
	v := int(math.Ceil(size / float64(numSteps)))
	for _, l := range limits[:len(limits)-1] {
		if v <= l {
			return l
		}
	}
	return limits[len(limits)-1]
}

// stepCount returns the number of steps of the first limit that divides
// size exactly into more than one and at most maxSteps steps, or 0.
func stepCount(size, maxSteps int, limits []int) int {
	for _, l := range limits {
		n := size / l
		if n > 1 && n <= maxSteps && n*l == size {
			return n
		}
	}
	return 0
}

// divideMajorStep returns the minor step, in units, for a major step.
// 0 means no minor ticks.
func divideMajorStep(step float64, maxMinor int, unit calendar.Unit) float64 {
	minStep := 0.0
	istep := int(step)

	byCount := func(size int, limits []int) {
		if n := stepCount(size, maxMinor, limits); n > 0 {
			minStep = step / float64(n)
		}
	}

	switch unit {
	case calendar.Second:
		minStep = scale.ExactStepSize(step, maxMinor, scale.DefaultBase)
		if minStep == 0 {
			minStep = 0.5 * step
		}
	case calendar.Minute:
		if istep > maxMinor {
			byCount(istep, secondLimits)
		} else {
			byCount(istep*60, secondLimits)
		}
	case calendar.Hour:
		if istep > maxMinor {
			byCount(istep, hourMinorLimits)
		} else {
			byCount(istep*60, secondLimits)
		}
	case calendar.Day:
		if istep > maxMinor {
			byCount(istep, dayMinorLimits)
		} else {
			byCount(istep*24, hourMinorLimits)
		}
	case calendar.Week:
		switch {
		case maxMinor >= istep*7:
			// one tick per day
			minStep = 1.0 / 7.0
		case istep <= maxMinor:
			minStep = 1
		default:
			minStep = scale.DivideInterval(step, maxMinor, scale.DefaultBase)
		}
	case calendar.Month:
		// fractions of months make no sense
		if istep < maxMinor {
			maxMinor = istep
		}
		byCount(istep, monthLimits)
	case calendar.Year:
		if step >= float64(maxMinor) {
			minStep = scale.DivideInterval(step, maxMinor, scale.DefaultBase)
		} else {
			byCount(12*istep, monthLimits)
		}
	}

	if unit != calendar.Month && minStep == 0 {
		minStep = 0.5 * step
	}
	return minStep
}

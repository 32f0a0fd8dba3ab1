package engine

import (
	"math"

	"github.com/roach88/scalediv/internal/scale"
)

// logAutoScale widens [x1, x2] to powers of the base. The returned step is
// in decades and is at least 1, unless the interval spans less than one
// decade and had to be divided linearly: then the step is in domain units.
func (e *Engine) logAutoScale(maxSteps int, x1, x2, fixedStep float64) (float64, float64, float64) {
	logBase := float64(e.base)
	iv := e.logRequested(x1, x2)

	if iv.Max/iv.Min < logBase {
		// less than one decade: try a linear scale
		lx1, lx2, lstep := e.logLinear().linearAutoScale(maxSteps, iv.Min, iv.Max, fixedStep)

		linear := scale.NewInterval(lx1, lx2).Normalized().Limited(scale.LogMin, scale.LogMax)
		if linear.Max/linear.Min < logBase {
			// still less than one decade after alignment
			return lx1, lx2, lstep
		}
		fixedStep = 0
	}

	step := fixedStep
	if step == 0 {
		step = scale.DivideInterval(logInterval(logBase, iv).Width(), max(maxSteps, 1), e.base)
		if step < 1 {
			step = 1
		}
	}

	if !e.attrs.Has(scale.Floating) {
		iv = alignLog(logBase, iv, step)
	}

	x1, x2 = iv.Min, iv.Max
	if e.attrs.Has(scale.Inverted) {
		x1, x2 = x2, x1
		step = -step
	}
	return x1, x2, step
}

// logRequested orders [x1, x2], applies margins (in decades) and the
// Symmetric and IncludeReference attributes, and clamps the result into the
// log domain. A zero width interval is widened around its value.
func (e *Engine) logRequested(x1, x2 float64) scale.Interval {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	logBase := float64(e.base)

	iv := e.logLimited(scale.NewInterval(
		x1/math.Pow(logBase, e.lowerMargin),
		x2*math.Pow(logBase, e.upperMargin),
	))

	logRef := 1.0
	if e.reference > scale.LogMin/2 {
		logRef = math.Min(e.reference, scale.LogMax/2)
	}

	if e.attrs.Has(scale.Symmetric) {
		delta := math.Max(iv.Max/logRef, logRef/iv.Min)
		iv = scale.NewInterval(logRef/delta, logRef*delta)
	}
	if e.attrs.Has(scale.IncludeReference) {
		iv = iv.Extend(logRef)
	}

	iv = iv.Limited(scale.LogMin, scale.LogMax)

	if iv.Width() == 0 {
		iv = scale.BuildInterval(iv.Min).Limited(scale.LogMin, scale.LogMax)
	}
	return iv
}

// logLinear returns the linear engine that divides intervals narrower than
// one decade. The interval it gets already carries margins and attributes.
func (e *Engine) logLinear() *Engine {
	lin := e.linear()
	lin.lowerMargin, lin.upperMargin = 0, 0
	lin.attrs = e.attrs &^ (scale.Symmetric | scale.IncludeReference)
	return lin
}

// logDivideScale lays out decade ticks on [x1, x2]. Ranges below one
// decade are divided linearly with a step in domain units.
func (e *Engine) logDivideScale(x1, x2 float64, maxMajor, maxMinor int, step float64) scale.Division {
	logBase := float64(e.base)
	iv := e.logLimited(scale.NewInterval(x1, x2))

	if iv.Width() == 0 {
		return scale.NewDivision(x1, x2, nil, nil, []float64{iv.Min})
	}

	if iv.Max/iv.Min < logBase {
		lx1, lx2 := iv.Min, iv.Max
		if x1 > x2 {
			lx1, lx2 = lx2, lx1
		}
		return e.logLinear().linearDivideScale(lx1, lx2, maxMajor, maxMinor, step)
	}

	step = math.Abs(step)
	if step == 0 {
		step = scale.DivideInterval(logInterval(logBase, iv).Width(), maxMajor, e.base)
		if step < 1 {
			step = 1
		}
	}

	bounding := alignLog(logBase, iv, step)
	major := logMajorTicks(logBase, bounding, step)

	var medium, minor []float64
	if maxMinor > 0 {
		medium, minor = e.logMinorTicks(logBase, major, maxMinor, step)
	}

	div := scale.NewDivision(iv.Min, iv.Max,
		scale.StripTicks(minor, iv),
		scale.StripTicks(medium, iv),
		scale.StripTicks(major, iv),
	)
	if x1 > x2 {
		div = div.Inverted()
	}
	return div
}

// logLimited orders iv and clamps it into the log domain. Non-positive
// bounds are reported.
func (e *Engine) logLimited(iv scale.Interval) scale.Interval {
	iv = iv.Normalized()
	if iv.Min < scale.LogMin || iv.Max > scale.LogMax {
		out := iv.Limited(scale.LogMin, scale.LogMax)
		e.logger.Warn("logarithmic interval clamped",
			"interval", iv.String(),
			"clamped", out.String())
		return out
	}
	return iv
}

func logMajorTicks(logBase float64, iv scale.Interval, step float64) []float64 {
	liv := logInterval(logBase, iv)

	numTicks := int(math.Round(liv.Width()/step)) + 1
	numTicks = min(max(numTicks, 2), maxTicks)

	lstep := liv.Width() / float64(numTicks-1)

	ticks := make([]float64, 0, numTicks)
	ticks = append(ticks, iv.Min)
	for i := 1; i < numTicks-1; i++ {
		ticks = append(ticks, powOf(logBase, liv.Min+float64(i)*lstep))
	}
	ticks = append(ticks, iv.Max)
	return ticks
}

// logMinorTicks places minor ticks between decades.
//
// For a step of one decade the ticks are multiples of the decade start
// (2*10^k ... 9*10^k for base 10), thinned to the minor budget. Larger steps
// put minor ticks on intermediate decades.
func (e *Engine) logMinorTicks(logBase float64, major []float64, maxMinor int, step float64) (medium, minor []float64) {
	if step < 1.1 {
		minStep := scale.DivideInterval(step, maxMinor+1, e.base)
		if minStep == 0 {
			return nil, nil
		}

		numSteps := int(math.Round(step / minStep))
		if numSteps <= 0 {
			return nil, nil
		}

		mediumIndex := -1
		if numSteps > 2 && numSteps%2 == 0 {
			mediumIndex = numSteps / 2
		}

		for _, v := range major {
			s := logBase / float64(numSteps)

			if s >= 1.0 {
				if !scale.FuzzyEqual(s, 1.0) {
					minor = append(minor, snapMantissa(v*s, v))
				}
				for j := 2; j < numSteps; j++ {
					minor = append(minor, snapMantissa(v*float64(j)*s, v))
				}
			} else {
				for j := 1; j < numSteps; j++ {
					tick := snapMantissa(v+float64(j)*v*(logBase-1)/float64(numSteps), v)
					if j == mediumIndex {
						medium = append(medium, tick)
					} else {
						minor = append(minor, tick)
					}
				}
			}
		}
		return medium, minor
	}

	minStep := scale.DivideInterval(step, maxMinor, e.base)
	if minStep == 0 {
		return nil, nil
	}
	if minStep < 1 {
		minStep = 1
	}

	// ticks between two major ticks
	numTicks := int(math.Round(step/minStep)) - 1

	// Do the minor steps fit into the interval?
	if scale.FuzzyCompare(float64(numTicks+1)*minStep, step, step) > 0 {
		numTicks = 0
	}
	if numTicks < 1 {
		return nil, nil
	}

	mediumIndex := -1
	if numTicks > 2 && numTicks%2 != 0 {
		mediumIndex = numTicks / 2
	}

	minFactor := math.Max(powOf(logBase, minStep), logBase)

	for _, v := range major {
		tick := v
		for j := 0; j < numTicks; j++ {
			tick = snapMantissa(tick*minFactor, tick*minFactor)
			if j == mediumIndex {
				medium = append(medium, tick)
			} else {
				minor = append(minor, tick)
			}
		}
	}
	return medium, minor
}

// alignLog aligns the exponents of iv to multiples of step.
func alignLog(logBase float64, iv scale.Interval, step float64) scale.Interval {
	liv := logInterval(logBase, iv)

	x1 := scale.FloorEps(liv.Min, step)
	if scale.FuzzyCompare(liv.Min, x1, step) == 0 {
		x1 = liv.Min
	}

	x2 := scale.CeilEps(liv.Max, step)
	if scale.FuzzyCompare(liv.Max, x2, step) == 0 {
		x2 = liv.Max
	}

	return scale.Interval{Min: powOf(logBase, x1), Max: powOf(logBase, x2)}
}

func logInterval(logBase float64, iv scale.Interval) scale.Interval {
	return scale.Interval{Min: logOf(logBase, iv.Min), Max: logOf(logBase, iv.Max)}
}

// logOf returns the logarithm of v. Results within 1e-10 of an integer are
// rounded so that exact powers give exact exponents.
func logOf(logBase, v float64) float64 {
	var l float64
	switch logBase {
	case 10:
		l = math.Log10(v)
	case 2:
		l = math.Log2(v)
	default:
		l = math.Log(v) / math.Log(logBase)
	}
	if r := math.Round(l); math.Abs(l-r) < 1e-10 {
		return r
	}
	return l
}

// powOf returns logBase^x, exact for integer exponents of base 10.
func powOf(logBase, x float64) float64 {
	if r := math.Round(x); math.Abs(x-r) < 1e-10 {
		if logBase == 10 && math.Abs(r) <= 308 {
			return math.Pow10(int(r))
		}
		return math.Pow(logBase, r)
	}
	return math.Pow(logBase, x)
}

// snapMantissa rounds v to 12 significant digits relative to unit, so that
// 3*0.1 becomes 0.3.
func snapMantissa(v, unit float64) float64 {
	if v == 0 || unit == 0 {
		return v
	}
	p := math.Floor(math.Log10(math.Abs(unit))) - 12
	if p < -300 || p > 300 {
		return v
	}
	scaleBy := math.Pow10(int(-p))
	r := math.Round(v*scaleBy) / scaleBy
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	return r
}

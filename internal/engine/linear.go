package engine

import (
	"math"

	"github.com/roach88/scalediv/internal/scale"
)

// linearAutoScale widens [x1, x2] to multiples of a nice step.
// A non-zero fixedStep replaces the computed step.
func (e *Engine) linearAutoScale(maxSteps int, x1, x2, fixedStep float64) (float64, float64, float64) {
	iv := e.linearRequested(x1, x2)

	step := fixedStep
	if step == 0 {
		maxSteps = max(maxSteps, 1)
		step = scale.DivideInterval(iv.Width(), maxSteps, e.base)
		if !e.attrs.Has(scale.Floating) {
			step = e.fitAligned(iv, step, maxSteps)
		}
	}

	if step != 0 && !e.attrs.Has(scale.Floating) {
		iv = alignLinear(iv, step)
	}

	x1, x2 = iv.Min, iv.Max
	if e.attrs.Has(scale.Inverted) {
		x1, x2 = x2, x1
		step = -step
	}
	return x1, x2, step
}

// linearRequested orders [x1, x2] and applies margins and the Symmetric and
// IncludeReference attributes. A zero width interval is widened around its
// value.
func (e *Engine) linearRequested(x1, x2 float64) scale.Interval {
	iv := scale.NewInterval(x1, x2).Normalized()

	iv.Min -= e.lowerMargin
	iv.Max += e.upperMargin

	if e.attrs.Has(scale.Symmetric) {
		iv = iv.Symmetrize(e.reference)
	}
	if e.attrs.Has(scale.IncludeReference) {
		iv = iv.Extend(e.reference)
	}
	if iv.Width() == 0 {
		iv = scale.BuildInterval(iv.Min)
	}
	return iv
}

// fitAligned coarsens step until the interval aligned to it has no more
// than maxSteps steps. Alignment can add up to one step at either end.
func (e *Engine) fitAligned(iv scale.Interval, step float64, maxSteps int) float64 {
	for i := 0; i < 16 && step > 0; i++ {
		aligned := alignLinear(iv, step)
		if math.Round(aligned.Width()/step) <= float64(maxSteps) {
			break
		}
		step = scale.DivideInterval(step*1.01, 1, e.base)
	}
	return step
}

// linearDivideScale lays out ticks on [x1, x2] with multiples of step.
func (e *Engine) linearDivideScale(x1, x2 float64, maxMajor, maxMinor int, step float64) scale.Division {
	iv := scale.NewInterval(x1, x2).Normalized()

	if iv.Width() == 0 {
		return scale.NewDivision(x1, x2, nil, nil, []float64{x1})
	}

	step = math.Abs(step)
	if step == 0 {
		step = scale.DivideInterval(iv.Width(), maxMajor, e.base)
	}
	if step == 0 {
		step = iv.Width()
	}

	major, medium, minor := e.linearTicks(iv, step, maxMinor)
	div := scale.NewDivision(iv.Min, iv.Max, minor, medium, major)
	if x1 > x2 {
		div = div.Inverted()
	}
	return div
}

func (e *Engine) linearTicks(iv scale.Interval, step float64, maxMinor int) (major, medium, minor []float64) {
	bounding := alignLinear(iv, step)

	major = linearMajorTicks(bounding, step)
	if maxMinor > 0 {
		medium, minor = e.linearMinorTicks(major, maxMinor, step)
	}

	return scale.StripTicks(major, iv), scale.StripTicks(medium, iv), scale.StripTicks(minor, iv)
}

func linearMajorTicks(iv scale.Interval, step float64) []float64 {
	numTicks := int(math.Round(iv.Width()/step)) + 1
	numTicks = min(max(numTicks, 1), maxTicks)

	ticks := make([]float64, 0, numTicks)
	for i := 0; i < numTicks; i++ {
		ticks = append(ticks, scale.SnapToStep(iv.Min+float64(i)*step, step))
	}
	return ticks
}

// linearMinorTicks subdivides every major step. When the number of
// subdivisions is even the middle tick is a medium tick.
func (e *Engine) linearMinorTicks(major []float64, maxMinor int, step float64) (medium, minor []float64) {
	minStep := scale.DivideInterval(step, maxMinor, e.base)
	if minStep == 0 {
		return nil, nil
	}

	// ticks between two major ticks
	numTicks := int(math.Ceil(math.Abs(step/minStep)-scale.Eps)) - 1

	medIndex := -1
	if numTicks%2 != 0 {
		medIndex = numTicks / 2
	}

	for _, v := range major {
		for k := 0; k < numTicks; k++ {
			val := scale.SnapToStep(v+float64(k+1)*minStep, minStep)
			if k == medIndex {
				medium = append(medium, val)
			} else {
				minor = append(minor, val)
			}
		}
	}
	return medium, minor
}

// alignLinear floors the lower and ceils the upper bound to multiples of
// step. Bounds that are only off by floating point noise are kept.
func alignLinear(iv scale.Interval, step float64) scale.Interval {
	x1, x2 := iv.Min, iv.Max
	const eps = 1.0e-12

	if -math.MaxFloat64+step <= x1 {
		x := scale.FloorEps(x1, step)
		if math.Abs(x) <= eps || !scale.FuzzyEqual(x1, x) {
			x1 = scale.SnapToStep(x, step)
		}
	}

	if math.MaxFloat64-step >= x2 {
		x := scale.CeilEps(x2, step)
		if math.Abs(x) <= eps || !scale.FuzzyEqual(x2, x) {
			x2 = scale.SnapToStep(x, step)
		}
	}

	return scale.Interval{Min: x1, Max: x2}
}

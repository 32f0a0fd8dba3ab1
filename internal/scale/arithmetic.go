package scale

import "math"

// Eps is the relative tolerance used by all step arithmetic.
const Eps = 1.0e-6

// DefaultBase is the base used for nice-number selection on decimal axes.
const DefaultBase = 10

// FuzzyCompare compares two values with a tolerance of Eps*intervalSize.
// It returns -1 if a < b, 1 if a > b and 0 if they are considered equal.
func FuzzyCompare(a, b, intervalSize float64) int {
	eps := math.Abs(Eps * intervalSize)
	switch {
	case b-a > eps:
		return -1
	case a-b > eps:
		return 1
	default:
		return 0
	}
}

// CeilEps rounds value up to the next multiple of intervalSize.
// Values within Eps*intervalSize above a multiple are rounded down to it.
func CeilEps(value, intervalSize float64) float64 {
	if intervalSize == 0 {
		return value
	}
	eps := Eps * intervalSize
	v := (value - eps) / intervalSize
	return math.Ceil(v) * intervalSize
}

// FloorEps rounds value down to the previous multiple of intervalSize.
// Values within Eps*intervalSize below a multiple are rounded up to it.
func FloorEps(value, intervalSize float64) float64 {
	if intervalSize == 0 {
		return value
	}
	eps := Eps * intervalSize
	v := (value + eps) / intervalSize
	return math.Floor(v) * intervalSize
}

// DivideEps divides an interval into steps, shrinking the interval by
// Eps of its size first so that exact quotients do not round upward.
func DivideEps(intervalSize, numSteps float64) float64 {
	if numSteps == 0 || intervalSize == 0 {
		return 0
	}
	return (intervalSize - Eps*intervalSize) / numSteps
}

// DivideInterval finds a nice step size for dividing intervalSize into at
// most numSteps steps.
//
// The result has the form n*base^p where n is obtained by repeatedly halving
// base (for base 10: 1, 2, 5 and 10). It is the smallest such value whose
// step count does not exceed numSteps. The sign of intervalSize is kept.
//
// A zero result means no step could be determined; callers substitute a
// default.
func DivideInterval(intervalSize float64, numSteps int, base int) float64 {
	if numSteps <= 0 || base < 2 {
		return 0
	}

	v := DivideEps(intervalSize, float64(numSteps))
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	b := float64(base)
	lx := math.Log(math.Abs(v)) / math.Log(b)
	p := math.Floor(lx)
	fraction := math.Pow(b, lx-p)

	n := base
	for n > 1 && fraction <= float64(n/2) {
		n /= 2
	}

	stepSize := float64(n) * math.Pow(b, p)
	if v < 0 {
		stepSize = -stepSize
	}
	return stepSize
}

// ExactStepSize returns a step size that divides intervalSize into an exact
// number of steps between 2 and maxSteps, where the step is itself a nice
// number in the given base. It returns 0 when no such division exists.
//
// For even bases 2*base^p is accepted in addition to the halving sequence,
// so base 10 accepts 1, 2 and 5 multiples.
func ExactStepSize(intervalSize float64, maxSteps int, base int) float64 {
	if maxSteps <= 2 || base < 2 || intervalSize <= 0 {
		return 0
	}

	b := float64(base)
	for numSteps := maxSteps; numSteps > 1; numSteps-- {
		stepSize := intervalSize / float64(numSteps)

		p := math.Floor(math.Log(stepSize) / math.Log(b))
		fraction := math.Pow(b, p)

		for n := base; n >= 1; n /= 2 {
			if FuzzyEqual(stepSize, float64(n)*fraction) {
				return math.Round(stepSize)
			}
			if n == 3 && base%2 == 0 && FuzzyEqual(stepSize, 2*fraction) {
				return math.Round(stepSize)
			}
		}
	}
	return 0
}

// FuzzyEqual compares two values relative to their magnitude.
// Values with a relative difference below 1e-12 are equal.
func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b)*1e12 <= math.Min(math.Abs(a), math.Abs(b))
}

// SnapToStep moves value onto the nearest multiple of stepSize when it lies
// within Eps*stepSize of it. Values near zero become exactly zero.
//
// For step sizes below one whose reciprocal is an integer (0.2, 0.05, ...)
// the multiple is computed by division, so 3 steps of 0.2 yield 0.6 and
// not 0.6000000000000001.
func SnapToStep(value, stepSize float64) float64 {
	if stepSize == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	k := math.Round(value / stepSize)
	if FuzzyCompare(value, k*stepSize, stepSize) != 0 {
		return value
	}
	return multiple(k, stepSize)
}

func multiple(k, stepSize float64) float64 {
	if k == 0 {
		return 0
	}
	if a := math.Abs(stepSize); a < 1 {
		inv := 1 / a
		if r := math.Round(inv); math.Abs(inv-r) <= 1e-9*r {
			return math.Copysign(k/r, k*stepSize)
		}
	}
	return k * stepSize
}

// Package scale holds the value types shared by every scale engine.
//
// An Interval is a pair of domain bounds that may be inverted. A Division is
// the result of dividing an interval into ticks: the bounding interval plus
// ordered major, medium and minor tick sequences. A Map translates domain
// values into paint coordinates through a Transform.
//
// All types in this package are values. Nothing here holds mutable shared
// state, so a Division or Map can be handed to any goroutine once computed.
//
// The arithmetic helpers (DivideInterval, CeilEps, FloorEps, FuzzyCompare)
// work with a tolerance of 1e-6 relative to the interval or step they are
// given. Tick positions computed by repeated addition drift by a few ulps,
// and that tolerance is what keeps such ticks on their boundaries.
package scale

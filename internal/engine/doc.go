// Package engine computes scale divisions for linear, logarithmic and time
// axes.
//
// An Engine is configured once with a Kind and options, then asked for a
// division of an interval:
//
//	e := engine.New(engine.Linear, engine.WithAttributes(scale.Inverted))
//	div := e.ComputeScale(scale.NewInterval(0, 100), 5, 3, 0)
//	m := e.TransformFor(div)
//
// The three kinds share one contract:
//
//   - AutoScale widens an interval so that its bounds fall on multiples of a
//     nice step size.
//   - DivideScale lays out major, medium and minor ticks over an interval.
//   - ComputeScale runs both with the configured attributes applied.
//
// Linear scales pick steps of the form n*base^p. Logarithmic scales work on
// the exponents and put major ticks on decades; ranges narrower than one
// decade fall back to a linear division. Time scales interpret values as
// milliseconds since the Unix epoch, pick the coarsest calendar unit that
// fits the tick budget and step by calendar fields, so months and years have
// their real lengths and daylight-saving switches keep ticks on wall-clock
// boundaries.
//
// ERROR HANDLING:
//
// No operation returns an error. Out-of-domain input (non-positive bounds on
// a log scale, dates beyond the supported calendar range, NaN) is clamped to
// the nearest valid value and reported through the engine's logger. A tick
// loop that runs past the calendar range stops and keeps the ticks it has.
//
// CONCURRENCY:
//
// An Engine is immutable after New. All methods are pure functions of their
// arguments and the configuration, so one Engine can serve any number of
// goroutines.
package engine

// Package numeric provides the shared primitives of the numerical methods labs.
//
// The package defines the types every algorithm package exchanges:
//
//   - [Func]: a real function of one variable, f(x)
//   - [Func2]: a real function of two variables, f(x, y), for y' = f(x, y)
//   - [Interval]: a bracket conjectured to hold exactly one root
//   - [Point] and [Trajectory]: sampled (x, y) pairs
//
// It also holds the fixed selection menus ([Tolerances], [Divisions]) and the
// sentinel errors shared by all labs.
//
// # Example
//
//	f := func(x float64) float64 { return x*math.Tanh(x) - 1 }
//	brackets, _ := roots.Bracket(f, -2, 2)
//	zeros, _ := roots.BisectAll(f, brackets, numeric.Tolerances[0])
//
// # Thread Safety
//
// Every value in this package is immutable once built. Algorithms that take a
// [Func] call it synchronously and never retain it.
package numeric

// Package problems defines the objective functions the harness benchmarks
// optimization methods against.
package problems

import (
	"gonum.org/v1/gonum/diff/fd"

	"github.com/copyleftdev/optbench/internal/errors"
)

// Problem is an objective function together with its gradient.
type Problem interface {
	// Name identifies the problem in results and plots.
	Name() string

	// Dim returns the dimensionality of the parameter vector.
	Dim() int

	// Eval evaluates the objective at x.
	Eval(x []float64) float64

	// Grad stores the gradient of the objective at x into dst.
	Grad(dst, x []float64)
}

// NumGrad fills dst with a central-difference approximation of the gradient
// of f at x. Problems without an analytic gradient use it to satisfy the
// Problem interface.
func NumGrad(f func([]float64) float64, dst, x []float64) {
	fd.Gradient(dst, f, x, &fd.Settings{Formula: fd.Central})
}

// ByName constructs one of the bundled problems. dim is the parameter
// dimensionality and seed drives any randomized construction.
func ByName(name string, dim int, seed int64) (Problem, error) {
	switch name {
	case "quadratic":
		return RandomQuadratic(dim, seed), nil
	case "rosenbrock":
		return NewRosenbrock(dim)
	case "rastrigin":
		return NewRastrigin(dim), nil
	}
	return nil, errors.Configf("unknown problem %q", name).
		WithComponent("problems").
		WithOperation("by_name")
}

package problems

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/copyleftdev/optbench/internal/errors"
)

// ReferenceMinimum computes an approximate minimizer of p starting from x0
// with a derivative-free Nelder-Mead search. The runner uses it to report
// how far each benchmarked method ended up from a reference solution.
func ReferenceMinimum(p Problem, x0 []float64) ([]float64, float64, error) {
	problem := optimize.Problem{
		Func: p.Eval,
	}

	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Relative:   1e-10,
			Iterations: 100,
		},
	}

	method := &optimize.NelderMead{
		Reflection:  1.0,
		Expansion:   2.0,
		Contraction: 0.5,
		Shrink:      0.5,
		SimplexSize: 0.2,
	}

	start := append([]float64(nil), x0...)
	result, err := optimize.Minimize(problem, start, settings, method)
	if err != nil {
		return nil, 0, errors.Wrap(err, "reference minimization failed").
			WithComponent("problems").
			WithOperation("reference_minimum")
	}

	return result.X, result.F, nil
}

package solvers

import (
	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/optbench/internal/problems"
)

// gradientDescent is the built-in first-order family: plain gradient
// descent with a constant or scheduled step, optionally with Nesterov
// momentum.
type gradientDescent struct {
	problem problems.Problem
	params  Params

	// prev holds the previous iterate for the momentum extrapolation.
	// Reset by initState so repeated runs do not share it.
	prev []float64
}

func newGradientDescent(problem problems.Problem, params Params) *gradientDescent {
	return &gradientDescent{problem: problem, params: params}
}

func (gd *gradientDescent) initState(xInit []float64) State {
	gd.prev = append(gd.prev[:0], xInit...)
	return State{IterNum: 0, Stepsize: gd.params.Stepsize(0)}
}

// update performs one descent step and returns the new iterate together
// with a replacement state.
func (gd *gradientDescent) update(sol []float64, state State) ([]float64, State) {
	n := len(sol)
	step := gd.params.Stepsize(state.IterNum)

	// Momentum extrapolation point; plain descent evaluates at sol.
	at := sol
	if gd.params.Acceleration && state.IterNum > 0 {
		k := float64(state.IterNum)
		beta := (k - 1) / (k + 2)
		at = make([]float64, n)
		for i := range at {
			at[i] = sol[i] + beta*(sol[i]-gd.prev[i])
		}
	}

	grad := make([]float64, n)
	gd.problem.Grad(grad, at)

	next := make([]float64, n)
	copy(next, at)
	floats.AddScaled(next, -step, grad)

	gd.prev = append(gd.prev[:0], sol...)

	return next, State{
		IterNum:  state.IterNum + 1,
		Stepsize: step,
		Error:    floats.Norm(grad, 2),
	}
}

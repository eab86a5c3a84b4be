package solvers

// Stepsize yields the step length for a given iteration number, so a
// schedule can shrink the step as the run progresses.
type Stepsize func(iter int) float64

// ConstStepsize returns a schedule that always yields c.
func ConstStepsize(c float64) Stepsize {
	return func(int) float64 { return c }
}

// InverseStepsize returns the schedule scale / (iter + offset).
func InverseStepsize(scale, offset float64) Stepsize {
	return func(iter int) float64 { return scale / (float64(iter) + offset) }
}

// Params configures a built-in solver. It is read-only for the duration of
// a benchmark run.
type Params struct {
	// XInit is the initial iterate.
	XInit []float64
	// Tol is the stopping tolerance compared against State.Error.
	Tol float64
	// MaxIter caps the number of iterations regardless of the stop
	// condition.
	MaxIter int
	// Stepsize is the step-length schedule.
	Stepsize Stepsize
	// Acceleration enables Nesterov momentum.
	Acceleration bool
	// Label overrides the method name in results and plots.
	Label string
}

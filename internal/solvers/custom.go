package solvers

// Custom is the contract a third-party optimizer implements to be
// benchmarked alongside the built-in family. Custom steps run exactly as
// written, so an implementation is free to do arbitrary work inside Update,
// such as sampling mini-batches.
type Custom interface {
	// InitState produces the initial state for a run. It must set at
	// least the iteration count and step-size.
	InitState(xInit []float64) (State, error)

	// Update performs one optimization step and returns the new iterate
	// and a replacement state.
	Update(sol []float64, state State) ([]float64, State, error)

	// StopCriterion reports whether the run should stop. It is never
	// consulted before the first step has completed.
	StopCriterion(sol []float64, state State) bool

	// MaxIter is the hard iteration cap for this optimizer.
	MaxIter() int

	// XInit is the optimizer's own default initial iterate, used when the
	// benchmark configuration does not supply one.
	XInit() []float64

	// Label identifies the optimizer in results and plots.
	Label() string
}

// Package solvers normalizes two optimizer shapes, the built-in
// gradient-descent family and user-supplied stateful optimizers, into one
// init-state/step/stop contract the benchmark runner drives.
package solvers

// State is the per-iteration record a solver carries between steps. It is a
// value: every step returns a fresh State instead of mutating the previous
// one, so no aliasing survives across iterations or repeated runs.
type State struct {
	// IterNum counts completed iterations.
	IterNum int
	// Stepsize is the step length used for the most recent step.
	Stepsize float64
	// Error is the solver-reported error after the most recent step.
	// Built-in solvers set it to the gradient norm; custom solvers may
	// leave it zero.
	Error float64
}

// Kind distinguishes the two solver shapes. It is chosen once when the
// solver is constructed, never re-derived inside the loop.
type Kind int

const (
	// KindBuiltin is a solver from the built-in family, selected by a
	// recognized method-name prefix.
	KindBuiltin Kind = iota
	// KindCustom is a user-supplied optimizer implementing Custom.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

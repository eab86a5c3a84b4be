// Package metrics validates the metric names a benchmark is asked to record
// against the fixed set the runner knows how to produce.
//
// Gradient and Hessian evaluation counters are intentionally absent from the
// known set: no solver reports them, so requesting one is a configuration
// error rather than a silent no-op.
package metrics

import (
	"github.com/copyleftdev/optbench/internal/errors"
)

const (
	// NumIterations is a single-element counter of completed iterations.
	NumIterations = "nit"
	// HistoryX records the iterate after every step.
	HistoryX = "history_x"
	// HistoryF records the objective value at the iterate after every step.
	HistoryF = "history_f"
	// Errors records the solver-reported error after every step. Only
	// built-in solvers carry an error in their state.
	Errors = "errors"
	// Time records the wall-clock duration of the whole run, once.
	Time = "time"
)

// Known is the fixed set of metrics the runner can record.
var Known = []string{NumIterations, HistoryX, HistoryF, Errors, Time}

var known = map[string]struct{}{
	NumIterations: {},
	HistoryX:      {},
	HistoryF:      {},
	Errors:        {},
	Time:          {},
}

// Check validates the requested metric names. It returns nil only if every
// name is known; order and duplicates do not matter. The returned error is a
// configuration error the caller can recover from.
func Check(names []string) error {
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return errors.Configf("unknown metric %q", name).
				WithComponent("metrics").
				WithOperation("check")
		}
	}
	return nil
}

// PerIteration reports whether the metric accumulates one value per
// completed iteration, as opposed to once per run.
func PerIteration(name string) bool {
	switch name {
	case HistoryX, HistoryF, Errors:
		return true
	}
	return false
}

// BuiltinOnly reports whether the metric can only be extracted from the
// state of a built-in solver.
func BuiltinOnly(name string) bool {
	return name == Errors
}

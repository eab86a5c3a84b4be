package solvers

import (
	"strings"

	"github.com/copyleftdev/optbench/internal/errors"
	"github.com/copyleftdev/optbench/internal/metrics"
	"github.com/copyleftdev/optbench/internal/problems"
)

// GradientDescentPrefix selects the built-in gradient-descent family. A
// method name like GRADIENT_DESCENT_const_step resolves to it.
const GradientDescentPrefix = "GRADIENT_DESCENT"

// Solver is the uniform surface the benchmark runner drives. It is a tagged
// union over the two solver shapes; the kind is fixed at construction.
type Solver struct {
	kind    Kind
	name    string
	builtin *gradientDescent
	custom  Custom
}

// NewBuiltin resolves name against the known built-in families and
// constructs the solver. An unrecognized prefix or invalid parameters
// produce a configuration error.
func NewBuiltin(name string, problem problems.Problem, params Params) (*Solver, error) {
	if !strings.HasPrefix(name, GradientDescentPrefix) {
		return nil, errors.Configf("unknown built-in method %q", name).
			WithComponent("solvers").
			WithOperation("new_builtin")
	}
	if problem == nil {
		return nil, errors.Config("built-in method needs a problem").
			WithComponent("solvers")
	}
	if params.MaxIter <= 0 {
		return nil, errors.Configf("method %q: maxiter must be positive, got %d", name, params.MaxIter).
			WithComponent("solvers")
	}
	if params.Stepsize == nil {
		return nil, errors.Configf("method %q: no stepsize configured", name).
			WithComponent("solvers")
	}
	if len(params.XInit) == 0 {
		return nil, errors.Configf("method %q: no initial point configured", name).
			WithComponent("solvers")
	}

	return &Solver{
		kind:    KindBuiltin,
		name:    name,
		builtin: newGradientDescent(problem, params),
	}, nil
}

// NewCustom wraps a user-supplied optimizer.
func NewCustom(name string, c Custom) (*Solver, error) {
	if c == nil {
		return nil, errors.Configf("method %q: nil custom optimizer", name).
			WithComponent("solvers").
			WithOperation("new_custom")
	}
	if c.MaxIter() <= 0 {
		return nil, errors.Configf("method %q: maxiter must be positive, got %d", name, c.MaxIter()).
			WithComponent("solvers")
	}
	return &Solver{kind: KindCustom, name: name, custom: c}, nil
}

// Kind reports which shape this solver wraps.
func (s *Solver) Kind() Kind { return s.kind }

// Name returns the configured method name.
func (s *Solver) Name() string { return s.name }

// Label returns the display label: the configured label if any, otherwise
// the method name.
func (s *Solver) Label() string {
	switch s.kind {
	case KindBuiltin:
		if s.builtin.params.Label != "" {
			return s.builtin.params.Label
		}
	case KindCustom:
		if l := s.custom.Label(); l != "" {
			return l
		}
	}
	return s.name
}

// MaxIter returns the hard iteration cap.
func (s *Solver) MaxIter() int {
	if s.kind == KindCustom {
		return s.custom.MaxIter()
	}
	return s.builtin.params.MaxIter
}

// DefaultXInit returns the initial iterate the runner should use when the
// configuration does not supply one. Custom solvers may carry their own.
func (s *Solver) DefaultXInit() []float64 {
	if s.kind == KindCustom {
		return s.custom.XInit()
	}
	return s.builtin.params.XInit
}

// InitState produces the initial state for one run. For built-in solvers it
// also resets any per-run scratch, so repeated runs start fresh.
func (s *Solver) InitState(xInit []float64) (State, error) {
	if s.kind == KindCustom {
		return s.custom.InitState(xInit)
	}
	return s.builtin.initState(xInit), nil
}

// Update advances the solution and state by one step.
func (s *Solver) Update(sol []float64, state State) ([]float64, State, error) {
	if s.kind == KindCustom {
		return s.custom.Update(sol, state)
	}
	next, st := s.builtin.update(sol, state)
	return next, st, nil
}

// Done reports whether the run should stop early. Built-in solvers compare
// the state error against the tolerance; custom solvers consult their own
// predicate. The runner never calls Done before the first step.
func (s *Solver) Done(sol []float64, state State) bool {
	if s.kind == KindCustom {
		return s.custom.StopCriterion(sol, state)
	}
	return state.Error < s.builtin.params.Tol
}

// Supports reports whether this solver kind can produce the named metric.
// The runner checks it before the loop starts so a metric the solver cannot
// produce fails fast instead of faulting mid-run.
func (s *Solver) Supports(metric string) bool {
	if metrics.BuiltinOnly(metric) {
		return s.kind == KindBuiltin
	}
	return true
}

package solvers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/optbench/internal/errors"
	"github.com/copyleftdev/optbench/internal/metrics"
	"github.com/copyleftdev/optbench/internal/problems"
)

func testProblem(t *testing.T) problems.Problem {
	t.Helper()
	p, err := problems.ByName("quadratic", 2, 11)
	require.NoError(t, err)
	return p
}

func validParams() Params {
	return Params{
		XInit:    []float64{1, 1},
		Tol:      1e-6,
		MaxIter:  100,
		Stepsize: ConstStepsize(1e-2),
	}
}

func TestNewBuiltin(t *testing.T) {
	problem := problems.RandomQuadratic(2, 1)

	tests := []struct {
		name       string
		methodName string
		mutate     func(*Params)
		wantErr    bool
	}{
		{
			name:       "const step",
			methodName: "GRADIENT_DESCENT_const_step",
		},
		{
			name:       "bare prefix",
			methodName: "GRADIENT_DESCENT",
		},
		{
			name:       "unknown prefix",
			methodName: "NEWTON_exact",
			wantErr:    true,
		},
		{
			name:       "nelder mead is not a stepwise family",
			methodName: "NELDER_MEAD",
			wantErr:    true,
		},
		{
			name:       "zero maxiter",
			methodName: "GRADIENT_DESCENT",
			mutate:     func(p *Params) { p.MaxIter = 0 },
			wantErr:    true,
		},
		{
			name:       "nil stepsize",
			methodName: "GRADIENT_DESCENT",
			mutate:     func(p *Params) { p.Stepsize = nil },
			wantErr:    true,
		},
		{
			name:       "missing initial point",
			methodName: "GRADIENT_DESCENT",
			mutate:     func(p *Params) { p.XInit = nil },
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			if tt.mutate != nil {
				tt.mutate(&params)
			}
			sv, err := NewBuiltin(tt.methodName, problem, params)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsConfig(err), "want a configuration error, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, KindBuiltin, sv.Kind())
			assert.Equal(t, tt.methodName, sv.Name())
		})
	}
}

func TestSolverLabel(t *testing.T) {
	problem := testProblem(t)

	params := validParams()
	sv, err := NewBuiltin("GRADIENT_DESCENT_const_step", problem, params)
	require.NoError(t, err)
	assert.Equal(t, "GRADIENT_DESCENT_const_step", sv.Label())

	params.Label = "GD"
	sv, err = NewBuiltin("GRADIENT_DESCENT_const_step", problem, params)
	require.NoError(t, err)
	assert.Equal(t, "GD", sv.Label())
}

func TestGradientDescentConverges(t *testing.T) {
	problem := testProblem(t)
	params := validParams()
	params.MaxIter = 2000

	sv, err := NewBuiltin("GRADIENT_DESCENT", problem, params)
	require.NoError(t, err)

	sol := append([]float64(nil), params.XInit...)
	state, err := sv.InitState(sol)
	require.NoError(t, err)
	assert.Equal(t, 0, state.IterNum)

	for i := 0; i < sv.MaxIter(); i++ {
		if i > 0 && sv.Done(sol, state) {
			break
		}
		sol, state, err = sv.Update(sol, state)
		require.NoError(t, err)
	}

	// Converged to the gradient-norm tolerance.
	assert.Less(t, state.Error, params.Tol)
}

func TestStateIsReplacedEachStep(t *testing.T) {
	problem := testProblem(t)
	sv, err := NewBuiltin("GRADIENT_DESCENT", problem, validParams())
	require.NoError(t, err)

	sol := []float64{1, 1}
	s0, err := sv.InitState(sol)
	require.NoError(t, err)

	sol, s1, err := sv.Update(sol, s0)
	require.NoError(t, err)
	_, s2, err := sv.Update(sol, s1)
	require.NoError(t, err)

	// Each step returns a fresh state; earlier states are untouched.
	assert.Equal(t, 0, s0.IterNum)
	assert.Equal(t, 1, s1.IterNum)
	assert.Equal(t, 2, s2.IterNum)
}

func TestAcceleratedDescentConverges(t *testing.T) {
	problem := testProblem(t)
	params := validParams()
	params.MaxIter = 2000
	params.Acceleration = true

	sv, err := NewBuiltin("GRADIENT_DESCENT_accelerated", problem, params)
	require.NoError(t, err)

	sol := append([]float64(nil), params.XInit...)
	state, err := sv.InitState(sol)
	require.NoError(t, err)
	for i := 0; i < sv.MaxIter(); i++ {
		if i > 0 && sv.Done(sol, state) {
			break
		}
		sol, state, err = sv.Update(sol, state)
		require.NoError(t, err)
	}

	assert.Less(t, state.Error, params.Tol)
}

func TestStepsizeSchedules(t *testing.T) {
	c := ConstStepsize(0.5)
	assert.Equal(t, 0.5, c(0))
	assert.Equal(t, 0.5, c(100))

	inv := InverseStepsize(1, 20)
	assert.InDelta(t, 1.0/20.0, inv(0), 1e-12)
	assert.InDelta(t, 1.0/30.0, inv(10), 1e-12)
}

func TestSupports(t *testing.T) {
	problem := testProblem(t)
	builtin, err := NewBuiltin("GRADIENT_DESCENT", problem, validParams())
	require.NoError(t, err)

	custom, err := NewCustom("noop", &noopCustom{maxIter: 5, xInit: []float64{0, 0}})
	require.NoError(t, err)

	assert.True(t, builtin.Supports(metrics.Errors))
	assert.False(t, custom.Supports(metrics.Errors))
	for _, name := range []string{metrics.HistoryX, metrics.HistoryF, metrics.NumIterations, metrics.Time} {
		assert.True(t, builtin.Supports(name), name)
		assert.True(t, custom.Supports(name), name)
	}
}

func TestNewCustom(t *testing.T) {
	_, err := NewCustom("nil", nil)
	assert.True(t, errors.IsConfig(err))

	_, err = NewCustom("bad maxiter", &noopCustom{maxIter: 0})
	assert.True(t, errors.IsConfig(err))

	sv, err := NewCustom("ok", &noopCustom{maxIter: 3, xInit: []float64{2, 2}})
	require.NoError(t, err)
	assert.Equal(t, KindCustom, sv.Kind())
	assert.Equal(t, []float64{2, 2}, sv.DefaultXInit())
	assert.Equal(t, 3, sv.MaxIter())
}

// noopCustom steps in place and never asks to stop.
type noopCustom struct {
	maxIter int
	xInit   []float64
}

func (c *noopCustom) InitState(xInit []float64) (State, error) {
	return State{IterNum: 0, Stepsize: 1}, nil
}

func (c *noopCustom) Update(sol []float64, state State) ([]float64, State, error) {
	next := append([]float64(nil), sol...)
	return next, State{IterNum: state.IterNum + 1, Stepsize: state.Stepsize}, nil
}

func (c *noopCustom) StopCriterion(sol []float64, state State) bool { return false }

func (c *noopCustom) MaxIter() int { return c.maxIter }

func (c *noopCustom) XInit() []float64 { return c.xInit }

func (c *noopCustom) Label() string { return "noop" }

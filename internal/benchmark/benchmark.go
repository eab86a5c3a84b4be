// Package benchmark drives optimization methods against a problem and
// accumulates per-iteration metrics into a Result.
package benchmark

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/copyleftdev/optbench/internal/errors"
	"github.com/copyleftdev/optbench/internal/metrics"
	"github.com/copyleftdev/optbench/internal/problems"
	"github.com/copyleftdev/optbench/internal/solvers"
)

// MethodConfig names one method to benchmark. Either Custom carries a
// user-supplied optimizer, or Name selects a built-in family and Params
// configures it. Read-only during the run.
type MethodConfig struct {
	Name   string
	Params solvers.Params
	Custom solvers.Custom
}

// Benchmark runs a set of configured methods against one problem, strictly
// sequentially, each method with its own fresh state.
type Benchmark struct {
	problem problems.Problem
	methods []MethodConfig
	solvers []*solvers.Solver
	metrics []string
	runs    int
	logger  *zap.Logger
}

// Option configures a Benchmark.
type Option func(*Benchmark)

// WithRuns repeats every method n times so the plotter can draw mean and
// standard-deviation bands.
func WithRuns(n int) Option {
	return func(b *Benchmark) {
		if n > 0 {
			b.runs = n
		}
	}
}

// WithLogger sets the logger used for per-method progress and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Benchmark) { b.logger = logger }
}

// New validates the whole configuration up front: metric names against the
// fixed known set, method names against the built-in families, and every
// requested metric against what each solver kind can actually produce. Any
// violation is a typed configuration error; nothing is run.
func New(problem problems.Problem, methods []MethodConfig, metricNames []string, opts ...Option) (*Benchmark, error) {
	if problem == nil {
		return nil, errors.Config("no problem configured").WithComponent("benchmark")
	}
	if len(methods) == 0 {
		return nil, errors.Config("no methods configured").WithComponent("benchmark")
	}
	if err := metrics.Check(metricNames); err != nil {
		return nil, err
	}

	b := &Benchmark{
		problem: problem,
		methods: methods,
		metrics: append([]string(nil), metricNames...),
		runs:    1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	// Resolve every method to a solver now, so the kind is chosen once
	// and configuration errors surface before anything runs.
	for _, m := range methods {
		var (
			sv  *solvers.Solver
			err error
		)
		if m.Custom != nil {
			sv, err = solvers.NewCustom(m.Name, m.Custom)
		} else {
			sv, err = solvers.NewBuiltin(m.Name, problem, m.Params)
		}
		if err != nil {
			return nil, err
		}

		for _, name := range b.metrics {
			if !sv.Supports(name) {
				return nil, errors.Configf("metric %q is not available for %s method %q",
					name, sv.Kind(), m.Name).
					WithComponent("benchmark").
					WithOperation("validate")
			}
		}
		b.solvers = append(b.solvers, sv)
	}

	return b, nil
}

// Run benchmarks every configured method. A method whose loop fails is
// logged and left out of the result entirely; the remaining methods still
// run. Run only returns an error when the context is cancelled.
func (b *Benchmark) Run(ctx context.Context) (*Result, error) {
	res := newResult(b.problem.Name(), b.metrics)

	for _, sv := range b.solvers {
		label := sv.Label()
		logger := b.logger.With(zap.String("method", label), zap.Stringer("kind", sv.Kind()))

		runs := make([]map[string]*Series, 0, b.runs)
		for run := 0; run < b.runs; run++ {
			rec, err := b.runSolver(ctx, sv)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				logger.Error("method failed, skipping", zap.Int("run", run), zap.Error(err))
				runs = nil
				break
			}
			runs = append(runs, rec)
		}
		if runs == nil {
			continue
		}

		res.addMethod(label, runs)
		methodRunsTotal.Inc()
		logger.Info("method finished", zap.Int("runs", len(runs)))
	}

	return res, nil
}

// runSolver is the core loop: initialize state, step until the stop
// condition fires or the iteration cap is reached, and append the requested
// metrics after every step. The stop condition is never evaluated before
// the first step, so every run performs at least one update.
func (b *Benchmark) runSolver(ctx context.Context, sv *solvers.Solver) (map[string]*Series, error) {
	rec := make(map[string]*Series, len(b.metrics))
	for _, name := range b.metrics {
		rec[name] = &Series{}
	}

	start := time.Now()

	xInit := sv.DefaultXInit()
	state, err := sv.InitState(xInit)
	if err != nil {
		return nil, errors.Wrap(err, "initializing state").WithComponent("benchmark")
	}
	sol := append([]float64(nil), xInit...)

	for i := 0; i < sv.MaxIter(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if i > 0 && sv.Done(sol, state) {
			break
		}

		sol, state, err = sv.Update(sol, state)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d failed", i).WithComponent("benchmark")
		}
		iterationsTotal.WithLabelValues(sv.Label()).Inc()

		for _, name := range b.metrics {
			s := rec[name]
			switch name {
			case metrics.HistoryX:
				s.Points = append(s.Points, append([]float64(nil), sol...))
			case metrics.HistoryF:
				s.Values = append(s.Values, b.problem.Eval(sol))
			case metrics.NumIterations:
				if len(s.Values) == 0 {
					s.Values = []float64{0}
				}
				s.Values[0]++
			case metrics.Errors:
				s.Values = append(s.Values, state.Error)
			}
		}
	}

	if s, ok := rec[metrics.Time]; ok {
		s.Values = []float64{time.Since(start).Seconds()}
	}

	return rec, nil
}

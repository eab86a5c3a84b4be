package benchmark

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	methodRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "optbench_method_runs_total",
		Help: "Number of method runs that completed successfully.",
	})

	iterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "optbench_solver_iterations_total",
		Help: "Number of solver iterations performed, by method.",
	}, []string{"method"})
)

package benchmark

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/copyleftdev/optbench/internal/errors"
	"github.com/copyleftdev/optbench/internal/metrics"
)

// Row is one (method, iteration) row of a Frame, carrying the mean and
// standard deviation of each column aggregated across repeated runs.
type Row struct {
	Method    string
	Iteration int
	Mean      map[string]float64
	Std       map[string]float64
}

// Frame is the tabular reshaping of a result for plotting: one row per
// method and iteration, one mean/std column pair per plottable metric.
type Frame struct {
	Problem string
	// Columns are the plottable metric names, in request order. The
	// history_x column holds the euclidean norm of the iterate.
	Columns []string
	Rows    []Row
}

// Frame reshapes the per-method series into a table. Only per-iteration
// metrics become columns; per-run metrics such as nit and time have no
// iteration axis. Requesting no plottable metric is a configuration error.
func (r *Result) Frame(metricNames []string) (*Frame, error) {
	if err := metrics.Check(metricNames); err != nil {
		return nil, err
	}

	var columns []string
	for _, name := range metricNames {
		if metrics.PerIteration(name) {
			columns = append(columns, name)
		}
	}
	if len(columns) == 0 {
		return nil, errors.Config("no per-iteration metric requested").
			WithComponent("benchmark").
			WithOperation("frame")
	}

	// A column no method ever recorded would otherwise produce an empty
	// figure with no indication of what went wrong.
	for _, col := range columns {
		recorded := false
		for _, method := range r.Methods {
			if len(r.Data[method][col]) > 0 {
				recorded = true
				break
			}
		}
		if !recorded {
			return nil, errors.Configf("metric %q was not recorded in this result", col).
				WithComponent("benchmark").
				WithOperation("frame")
		}
	}

	frame := &Frame{Problem: r.Problem, Columns: columns}

	for _, method := range r.Methods {
		byMetric := r.Data[method]

		// Rows exist up to the shortest run of the method.
		n := math.MaxInt
		for _, col := range columns {
			for _, s := range byMetric[col] {
				if l := seriesLen(s); l < n {
					n = l
				}
			}
		}
		if n == math.MaxInt {
			continue
		}

		for i := 0; i < n; i++ {
			row := Row{
				Method:    method,
				Iteration: i,
				Mean:      make(map[string]float64, len(columns)),
				Std:       make(map[string]float64, len(columns)),
			}
			for _, col := range columns {
				vals := valuesAt(byMetric[col], col, i)
				mean, std := stat.MeanStdDev(vals, nil)
				if len(vals) < 2 {
					std = 0
				}
				row.Mean[col] = mean
				row.Std[col] = std
			}
			frame.Rows = append(frame.Rows, row)
		}
	}

	return frame, nil
}

func seriesLen(s Series) int {
	if len(s.Points) > 0 {
		return len(s.Points)
	}
	return len(s.Values)
}

// valuesAt collects the i-th entry of every run of one metric. Vector
// entries collapse to their euclidean norm.
func valuesAt(runs []Series, col string, i int) []float64 {
	vals := make([]float64, 0, len(runs))
	for _, s := range runs {
		if col == metrics.HistoryX {
			vals = append(vals, floats.Norm(s.Points[i], 2))
		} else {
			vals = append(vals, s.Values[i])
		}
	}
	return vals
}

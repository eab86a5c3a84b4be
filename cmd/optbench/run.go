package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/copyleftdev/optbench/internal/benchmark"
	"github.com/copyleftdev/optbench/internal/metrics"
	"github.com/copyleftdev/optbench/internal/plot"
	"github.com/copyleftdev/optbench/internal/problems"
)

var (
	suitePath string
	runName   string
	writeHTML bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a benchmark suite",
	Long:  `Runs every method of a suite against its problem, saves the result as JSON, and optionally renders the comparison plot.`,
	RunE:  runBenchmark,
}

func init() {
	runCmd.Flags().StringVar(&suitePath, "suite", "", "Suite definition file (required)")
	runCmd.Flags().StringVar(&runName, "name", "", "Result name (defaults to the suite file base name)")
	runCmd.Flags().BoolVar(&writeHTML, "html", false, "Also write the interactive plot")

	runCmd.MarkFlagRequired("suite")
	rootCmd.AddCommand(runCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	suite, err := benchmark.LoadSuite(suitePath)
	if err != nil {
		return err
	}

	b, err := suite.Build(benchmark.SuiteDefaults{
		Tol:     cfg.Benchmark.DefaultTol,
		MaxIter: cfg.Benchmark.DefaultMaxIter,
		Runs:    cfg.Benchmark.Runs,
	}, benchmark.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("starting benchmark",
		zap.String("problem", suite.Problem),
		zap.Int("methods", len(suite.Methods)),
		zap.Strings("metrics", suite.Metrics),
	)

	result, err := b.Run(cmd.Context())
	if err != nil {
		return err
	}

	reportReferenceGap(suite, result)

	name := runName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(suitePath), filepath.Ext(suitePath))
	}
	resultPath := filepath.Join(cfg.ResultsDir, name+".json")
	if err := result.Save(resultPath); err != nil {
		return err
	}
	logger.Info("result saved", zap.String("path", resultPath))

	if writeHTML {
		plotCfg := plot.DefaultConfig()
		plotCfg.Width = cfg.Plot.Width
		plotCfg.Height = cfg.Plot.Height
		plotCfg.ScrollZoom = cfg.Plot.ScrollZoom
		plotCfg.IncludePlotlyCDN = cfg.Plot.IncludePlotlyCDN

		p := plot.New(result, plotCfg)
		fig, err := p.Figure(result.Metrics)
		if err != nil {
			return err
		}
		plotPath := filepath.Join(cfg.PlotsDir, name+".html")
		if err := p.WriteHTML(fig, plotPath); err != nil {
			return err
		}
		logger.Info("plot written", zap.String("path", plotPath))
	}

	return nil
}

// reportReferenceGap logs, per method, how far the last recorded objective
// value is from a derivative-free reference minimum of the same problem.
func reportReferenceGap(suite *benchmark.Suite, result *benchmark.Result) {
	dim := suite.ProblemDim()
	problem, err := problems.ByName(suite.Problem, dim, suite.Seed)
	if err != nil {
		return
	}

	x0 := make([]float64, dim)
	_, fref, err := problems.ReferenceMinimum(problem, x0)
	if err != nil {
		logger.Warn("reference minimization failed", zap.Error(err))
		return
	}

	for _, method := range result.Methods {
		series := result.Data[method][metrics.HistoryF]
		if len(series) == 0 || len(series[0].Values) == 0 {
			continue
		}
		last := series[0].Values[len(series[0].Values)-1]
		logger.Info("reference gap",
			zap.String("method", method),
			zap.Float64("final_f", last),
			zap.Float64("reference_f", fref),
			zap.Float64("gap", last-fref),
		)
	}
}

package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/copyleftdev/optbench/internal/benchmark"
	"github.com/copyleftdev/optbench/internal/plot"
)

var (
	plotInput   string
	plotMetrics []string
	plotOut     string
	plotPNG     string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render plots from a saved result",
	RunE:  renderPlots,
}

func init() {
	plotCmd.Flags().StringVar(&plotInput, "input", "", "Result JSON file (required)")
	plotCmd.Flags().StringSliceVar(&plotMetrics, "metrics", nil, "Metrics to plot (defaults to the result's metrics)")
	plotCmd.Flags().StringVar(&plotOut, "out", "", "Output HTML path (defaults to the plots directory)")
	plotCmd.Flags().StringVar(&plotPNG, "png", "", "Also render this metric as a static PNG")

	plotCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(plotCmd)
}

func renderPlots(cmd *cobra.Command, args []string) error {
	result, err := benchmark.Load(plotInput)
	if err != nil {
		return err
	}

	metricNames := plotMetrics
	if len(metricNames) == 0 {
		metricNames = result.Metrics
	}

	plotCfg := plot.DefaultConfig()
	plotCfg.Width = cfg.Plot.Width
	plotCfg.Height = cfg.Plot.Height
	plotCfg.ScrollZoom = cfg.Plot.ScrollZoom
	plotCfg.IncludePlotlyCDN = cfg.Plot.IncludePlotlyCDN

	p := plot.New(result, plotCfg)
	fig, err := p.Figure(metricNames)
	if err != nil {
		return err
	}

	out := plotOut
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(plotInput), filepath.Ext(plotInput))
		out = filepath.Join(cfg.PlotsDir, base+".html")
	}
	if err := p.WriteHTML(fig, out); err != nil {
		return err
	}
	logger.Info("plot written", zap.String("path", out))

	if plotPNG != "" {
		pngPath := strings.TrimSuffix(out, ".html") + "_" + plotPNG + ".png"
		if err := p.WritePNG(plotPNG, pngPath); err != nil {
			return err
		}
		logger.Info("png written", zap.String("path", pngPath))
	}

	return nil
}

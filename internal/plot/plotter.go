package plot

import (
	"strings"

	"github.com/copyleftdev/optbench/internal/benchmark"
)

// Config carries the plot styling knobs, passed in explicitly rather than
// read from process-wide state.
type Config struct {
	Width            int
	Height           int
	ScrollZoom       bool
	IncludePlotlyCDN bool
}

// DefaultConfig returns the default plot configuration.
func DefaultConfig() Config {
	return Config{
		Width:            900,
		Height:           600,
		ScrollZoom:       true,
		IncludePlotlyCDN: true,
	}
}

// Plotter builds figures from a benchmark result.
type Plotter struct {
	result *benchmark.Result
	cfg    Config
}

// New creates a Plotter over a result.
func New(result *benchmark.Result, cfg Config) *Plotter {
	return &Plotter{result: result, cfg: cfg}
}

// Figure builds one interactive figure over the requested metrics. Each
// metric becomes a dropdown option sharing the logarithmic y-axis; only the
// first option's traces are visible initially. When the result holds
// multiple runs, each mean trace gets a shaded mean±std band, skipped when
// the standard deviation is uniformly zero.
func (p *Plotter) Figure(metricNames []string) (*Figure, error) {
	frame, err := p.result.Frame(metricNames)
	if err != nil {
		return nil, err
	}

	options := frame.Columns
	fig := &Figure{}

	for iMethod, method := range methodOrder(frame) {
		iters, means, stds := methodSeries(frame, method)
		marker := &Marker{
			Symbol: markerSymbols[iMethod%len(markerSymbols)],
			Color:  colorsRGBA[iMethod%len(colorsRGBA)],
		}
		fillColor := colorsRGBAFaint[iMethod%len(colorsRGBAFaint)]

		for _, option := range options {
			visible := option == options[0]
			hidden := false

			fig.Data = append(fig.Data, Trace{
				X:         iters,
				Y:         means[option],
				Mode:      "lines+markers",
				Marker:    marker,
				HoverText: method + " - " + option,
				Name:      method,
				Visible:   visible,
			})

			if allZero(stds[option]) {
				continue
			}

			upper := make([]float64, len(iters))
			lower := make([]float64, len(iters))
			for i := range iters {
				upper[i] = means[option][i] + stds[option][i]
				lower[i] = means[option][i] - stds[option][i]
			}

			fig.Data = append(fig.Data, Trace{
				X:          iters,
				Y:          upper,
				Mode:       "lines",
				Name:       "mean + std",
				Line:       &Line{Width: 0},
				ShowLegend: &hidden,
				HoverText:  method + " - " + option + "_upper",
				Visible:    visible,
			})
			fig.Data = append(fig.Data, Trace{
				X:          iters,
				Y:          lower,
				Mode:       "lines",
				Name:       "mean - std",
				Line:       &Line{Width: 0},
				Fill:       "tonexty",
				FillColor:  fillColor,
				ShowLegend: &hidden,
				HoverText:  method + " - " + option + "_lower",
				Visible:    visible,
			})
		}
	}

	buttons := make([]Button, 0, len(options))
	for _, option := range options {
		visible := make([]bool, len(fig.Data))
		for i, trace := range fig.Data {
			visible[i] = strings.Contains(trace.HoverText, option)
		}
		buttons = append(buttons, Button{
			Method: "update",
			Label:  option,
			Args: []interface{}{
				map[string]interface{}{"visible": visible},
				map[string]interface{}{"yaxis": Axis{Title: option, Type: "log"}},
			},
		})
	}

	fig.Layout = Layout{
		Title:    Title{Text: frame.Problem, X: 0.5, XAnchor: "center"},
		XAxis:    Axis{Title: "Iteration"},
		YAxis:    Axis{Type: "log"},
		DragMode: "pan",
		Width:    p.cfg.Width,
		Height:   p.cfg.Height,
		UpdateMenus: []UpdateMenu{{
			Buttons:    buttons,
			Direction:  "down",
			ShowActive: true,
			X:          -0.14,
			XAnchor:    "left",
			Y:          1.2,
			YAnchor:    "top",
		}},
	}

	return fig, nil
}

// methodOrder lists the frame's methods in first-appearance order.
func methodOrder(frame *benchmark.Frame) []string {
	var order []string
	seen := make(map[string]struct{})
	for _, row := range frame.Rows {
		if _, ok := seen[row.Method]; !ok {
			seen[row.Method] = struct{}{}
			order = append(order, row.Method)
		}
	}
	return order
}

// methodSeries extracts one method's iteration axis and per-column mean
// and std series from the frame.
func methodSeries(frame *benchmark.Frame, method string) (iters []int, means, stds map[string][]float64) {
	means = make(map[string][]float64, len(frame.Columns))
	stds = make(map[string][]float64, len(frame.Columns))
	for _, row := range frame.Rows {
		if row.Method != method {
			continue
		}
		iters = append(iters, row.Iteration)
		for _, col := range frame.Columns {
			means[col] = append(means[col], row.Mean[col])
			stds[col] = append(stds[col], row.Std[col])
		}
	}
	return iters, means, stds
}

func allZero(vals []float64) bool {
	for _, v := range vals {
		if v != 0 {
			return false
		}
	}
	return true
}

package plot

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/optbench/internal/benchmark"
	"github.com/copyleftdev/optbench/internal/errors"
	"github.com/copyleftdev/optbench/internal/metrics"
)

// twoMethodResult builds a result with two methods and a single run each,
// recording two per-iteration metrics.
func twoMethodResult() *benchmark.Result {
	return &benchmark.Result{
		Version: benchmark.ResultVersion,
		Problem: "quadratic",
		Metrics: []string{metrics.HistoryF, metrics.Errors},
		Methods: []string{"GD", "GD adaptive"},
		Data: map[string]map[string][]benchmark.Series{
			"GD": {
				metrics.HistoryF: {{Values: []float64{4, 2, 1}}},
				metrics.Errors:   {{Values: []float64{3, 2, 1}}},
			},
			"GD adaptive": {
				metrics.HistoryF: {{Values: []float64{5, 3, 2}}},
				metrics.Errors:   {{Values: []float64{4, 3, 2}}},
			},
		},
	}
}

// twoRunResult differs across runs so the std band is drawn.
func twoRunResult() *benchmark.Result {
	return &benchmark.Result{
		Version: benchmark.ResultVersion,
		Problem: "quadratic",
		Metrics: []string{metrics.HistoryF},
		Methods: []string{"SGD"},
		Data: map[string]map[string][]benchmark.Series{
			"SGD": {
				metrics.HistoryF: {
					{Values: []float64{4, 2}},
					{Values: []float64{2, 0}},
				},
			},
		},
	}
}

func TestFigureVisibility(t *testing.T) {
	p := New(twoMethodResult(), DefaultConfig())

	fig, err := p.Figure([]string{metrics.HistoryF, metrics.Errors})
	require.NoError(t, err)

	// Single run, zero std: one mean trace per method per option, no bands.
	require.Len(t, fig.Data, 4)

	var visibleNames []string
	for _, trace := range fig.Data {
		if !trace.Visible {
			// Hidden traces belong to the non-default dropdown option.
			assert.True(t, strings.Contains(trace.HoverText, metrics.Errors), trace.HoverText)
			continue
		}
		assert.True(t, strings.Contains(trace.HoverText, metrics.HistoryF), trace.HoverText)
		visibleNames = append(visibleNames, trace.Name)
	}

	// One visible trace per method under the first dropdown option.
	assert.ElementsMatch(t, []string{"GD", "GD adaptive"}, visibleNames)
}

func TestFigureDropdown(t *testing.T) {
	p := New(twoMethodResult(), DefaultConfig())

	fig, err := p.Figure([]string{metrics.HistoryF, metrics.Errors})
	require.NoError(t, err)

	require.Len(t, fig.Layout.UpdateMenus, 1)
	buttons := fig.Layout.UpdateMenus[0].Buttons
	require.Len(t, buttons, 2)
	assert.Equal(t, metrics.HistoryF, buttons[0].Label)
	assert.Equal(t, metrics.Errors, buttons[1].Label)
	for _, b := range buttons {
		assert.Equal(t, "update", b.Method)
	}

	assert.Equal(t, "log", fig.Layout.YAxis.Type)
	assert.Equal(t, "quadratic", fig.Layout.Title.Text)
}

func TestFigureStdBand(t *testing.T) {
	p := New(twoRunResult(), DefaultConfig())

	fig, err := p.Figure([]string{metrics.HistoryF})
	require.NoError(t, err)

	// Mean trace plus upper and lower band traces.
	require.Len(t, fig.Data, 3)

	upper := fig.Data[1]
	lower := fig.Data[2]
	assert.Contains(t, upper.HoverText, "_upper")
	assert.Contains(t, lower.HoverText, "_lower")
	assert.Equal(t, "tonexty", lower.Fill)
	require.NotNil(t, upper.Line)
	assert.Zero(t, upper.Line.Width)
	require.NotNil(t, upper.ShowLegend)
	assert.False(t, *upper.ShowLegend)

	// At iteration 0 the runs recorded {4, 2}: mean 3, sample std sqrt(2).
	std := math.Sqrt2
	assert.InDelta(t, 3+std, upper.Y[0], 1e-9)
	assert.InDelta(t, 3-std, lower.Y[0], 1e-9)
}

func TestFigureNoBandWhenStdZero(t *testing.T) {
	p := New(twoMethodResult(), DefaultConfig())

	fig, err := p.Figure([]string{metrics.HistoryF})
	require.NoError(t, err)

	for _, trace := range fig.Data {
		assert.Empty(t, trace.Fill)
	}
}

func TestFigureRejectsBadMetrics(t *testing.T) {
	p := New(twoMethodResult(), DefaultConfig())

	_, err := p.Figure([]string{"nhev"})
	assert.True(t, errors.IsConfig(err))

	_, err = p.Figure([]string{metrics.Time})
	assert.True(t, errors.IsConfig(err))
}

func TestWriteHTML(t *testing.T) {
	p := New(twoMethodResult(), DefaultConfig())
	fig, err := p.Figure([]string{metrics.HistoryF})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plots", "out.html")
	require.NoError(t, p.WriteHTML(fig, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "cdn.plot.ly")
	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, "quadratic")
}

func TestWriteHTMLWithoutCDN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludePlotlyCDN = false
	p := New(twoMethodResult(), cfg)
	fig, err := p.Figure([]string{metrics.HistoryF})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, p.WriteHTML(fig, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "cdn.plot.ly")
	assert.Contains(t, string(data), "plotly.min.js")
}

func TestFigureSerializes(t *testing.T) {
	p := New(twoRunResult(), DefaultConfig())
	fig, err := p.Figure([]string{metrics.HistoryF})
	require.NoError(t, err)

	data, err := json.Marshal(fig)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"visible":true`)
	assert.Contains(t, string(data), `"fill":"tonexty"`)
}

func TestWritePNG(t *testing.T) {
	p := New(twoMethodResult(), DefaultConfig())

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, p.WritePNG(metrics.HistoryF, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

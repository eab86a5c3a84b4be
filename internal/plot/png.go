package plot

import (
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/copyleftdev/optbench/internal/errors"
)

// WritePNG renders one metric as a static line chart, one series per
// method. It is the non-interactive companion to WriteHTML.
func (p *Plotter) WritePNG(metric string, path string) error {
	frame, err := p.result.Frame([]string{metric})
	if err != nil {
		return err
	}

	var series []chart.Series
	for _, method := range methodOrder(frame) {
		iters, means, _ := methodSeries(frame, method)
		xs := make([]float64, len(iters))
		for i, it := range iters {
			xs[i] = float64(it)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    method,
			XValues: xs,
			YValues: means[metric],
		})
	}
	if len(series) == 0 {
		return errors.Configf("no series to plot for metric %q", metric).
			WithComponent("plot")
	}

	c := chart.Chart{
		Title:  frame.Problem,
		Width:  p.cfg.Width,
		Height: p.cfg.Height,
		XAxis:  chart.XAxis{Name: "Iteration"},
		YAxis:  chart.YAxis{Name: metric},
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating plot directory").WithComponent("plot")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating plot file").WithComponent("plot")
	}
	defer f.Close()

	if err := c.Render(chart.PNG, f); err != nil {
		return errors.Wrap(err, "rendering chart").WithComponent("plot")
	}
	return nil
}

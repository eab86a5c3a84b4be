package plot

import (
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"

	"github.com/copyleftdev/optbench/internal/errors"
)

// plotlyCDN is the rendering script referenced by CDN-backed documents.
const plotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var htmlTemplate = template.Must(template.New("figure").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.ScriptSrc}}"></script>
</head>
<body>
<div id="figure"></div>
<script>
Plotly.newPlot("figure", {{.Data}}, {{.Layout}}, {{.Config}});
</script>
</body>
</html>
`))

// WriteHTML writes the figure as a standalone interactive document. With
// IncludePlotlyCDN set, the document references the rendering script from a
// CDN; otherwise it expects plotly.min.js next to the written file.
func (p *Plotter) WriteHTML(fig *Figure, path string) error {
	dataJSON, err := json.Marshal(fig.Data)
	if err != nil {
		return errors.Wrap(err, "encoding figure data").WithComponent("plot")
	}
	layoutJSON, err := json.Marshal(fig.Layout)
	if err != nil {
		return errors.Wrap(err, "encoding figure layout").WithComponent("plot")
	}
	configJSON, err := json.Marshal(map[string]interface{}{
		"scrollZoom":  p.cfg.ScrollZoom,
		"displaylogo": false,
	})
	if err != nil {
		return errors.Wrap(err, "encoding figure config").WithComponent("plot")
	}

	scriptSrc := "plotly.min.js"
	if p.cfg.IncludePlotlyCDN {
		scriptSrc = plotlyCDN
	}

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

	return htmlTemplate.Execute(f, map[string]interface{}{
		"Title":     fig.Layout.Title.Text,
		"ScriptSrc": scriptSrc,
		"Data":      template.JS(dataJSON),
		"Layout":    template.JS(layoutJSON),
		"Config":    template.JS(configJSON),
	})
}

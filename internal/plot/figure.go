// Package plot renders benchmark results as interactive comparison
// figures, one trace family per method, with a dropdown to switch metrics.
package plot

// Figure is a plotly.js figure: trace data plus layout, serialized to JSON
// as-is for the rendering script.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single scatter trace.
type Trace struct {
	X          []int     `json:"x"`
	Y          []float64 `json:"y"`
	Mode       string    `json:"mode,omitempty"`
	Name       string    `json:"name,omitempty"`
	HoverText  string    `json:"hovertext,omitempty"`
	Visible    bool      `json:"visible"`
	ShowLegend *bool     `json:"showlegend,omitempty"`
	Line       *Line     `json:"line,omitempty"`
	Marker     *Marker   `json:"marker,omitempty"`
	Fill       string    `json:"fill,omitempty"`
	FillColor  string    `json:"fillcolor,omitempty"`
}

type Line struct {
	Width float64 `json:"width"`
}

type Marker struct {
	Symbol string `json:"symbol,omitempty"`
	Color  string `json:"color,omitempty"`
}

type Axis struct {
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
}

type Layout struct {
	Title       Title        `json:"title"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	DragMode    string       `json:"dragmode,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
}

type UpdateMenu struct {
	Buttons    []Button `json:"buttons"`
	Direction  string   `json:"direction,omitempty"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	XAnchor    string   `json:"xanchor,omitempty"`
	Y          float64  `json:"y"`
	YAnchor    string   `json:"yanchor,omitempty"`
}

type Button struct {
	Method string        `json:"method"`
	Label  string        `json:"label"`
	Args   []interface{} `json:"args"`
}

// Marker symbols and trace colors cycle per method.
var markerSymbols = []string{
	"circle",
	"square",
	"diamond",
	"cross",
	"x",
	"triangle-up",
	"triangle-down",
	"triangle-left",
	"triangle-right",
	"triangle-ne",
	"triangle-se",
	"triangle-sw",
	"triangle-nw",
}

var colorsRGBA = []string{
	"rgba(31, 119, 180, 1)",
	"rgba(255, 127, 14, 1)",
	"rgba(44, 160, 44, 1)",
	"rgba(214, 39, 40, 1)",
	"rgba(148, 103, 189, 1)",
	"rgba(140, 86, 75, 1)",
	"rgba(227, 119, 194, 1)",
	"rgba(127, 127, 127, 1)",
	"rgba(188, 189, 34, 1)",
	"rgba(23, 190, 207, 1)",
}

var colorsRGBAFaint = []string{
	"rgba(31, 119, 180, 0.3)",
	"rgba(255, 127, 14, 0.3)",
	"rgba(44, 160, 44, 0.3)",
	"rgba(214, 39, 40, 0.3)",
	"rgba(148, 103, 189, 0.3)",
	"rgba(140, 86, 75, 0.3)",
	"rgba(227, 119, 194, 0.3)",
	"rgba(127, 127, 127, 0.3)",
	"rgba(188, 189, 34, 0.3)",
	"rgba(23, 190, 207, 0.3)",
}

package visualizer

import (
	"github.com/athapong/academicworld-mcp/pkg/academic"
)

const (
	Template        = "plotly_dark"
	PaperBackground = "#222"
	PlotBackground  = "rgba(0,0,0,0)"
)

// Figure is a Plotly figure as accepted by Plotly.newPlot
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. Only the attributes the dashboard uses are modelled.
type Trace struct {
	Type          string        `json:"type"`
	Name          string        `json:"name,omitempty"`
	X             []interface{} `json:"x,omitempty"`
	Y             []interface{} `json:"y,omitempty"`
	Labels        []string      `json:"labels,omitempty"`
	Values        []float64     `json:"values,omitempty"`
	Text          []string      `json:"text,omitempty"`
	Mode          string        `json:"mode,omitempty"`
	Marker        *Marker       `json:"marker,omitempty"`
	TextPosition  string        `json:"textposition,omitempty"`
	TextInfo      string        `json:"textinfo,omitempty"`
	HoverInfo     string        `json:"hoverinfo,omitempty"`
	HoverTemplate string        `json:"hovertemplate,omitempty"`
}

// Marker sizes scatter points
type Marker struct {
	Size     []float64 `json:"size,omitempty"`
	SizeMode string    `json:"sizemode,omitempty"`
	SizeRef  float64   `json:"sizeref,omitempty"`
}

// Layout is the figure layout
type Layout struct {
	Template     string `json:"template"`
	PaperBgColor string `json:"paper_bgcolor"`
	PlotBgColor  string `json:"plot_bgcolor"`
	XAxis        *Axis  `json:"xaxis,omitempty"`
	YAxis        *Axis  `json:"yaxis,omitempty"`
}

// Axis is an axis of a cartesian figure
type Axis struct {
	Title Title  `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

func darkLayout() Layout {
	return Layout{
		Template:     Template,
		PaperBgColor: PaperBackground,
		PlotBgColor:  PlotBackground,
	}
}

// BarFigure renders a publication count chart. Clicking a bar yields its label as points[0].x.
func BarFigure(chart academic.BarChart) Figure {
	x := make([]interface{}, 0, len(chart.Bars))
	y := make([]interface{}, 0, len(chart.Bars))
	for _, bar := range chart.Bars {
		x = append(x, bar.Label)
		y = append(y, bar.Value)
	}

	layout := darkLayout()
	layout.XAxis = &Axis{Title: Title{Text: chart.XLabel}}
	layout.YAxis = &Axis{Title: Title{Text: chart.YLabel}}

	return Figure{
		Data:   []Trace{{Type: "bar", X: x, Y: y}},
		Layout: layout,
	}
}

// ScatterFigure renders research volume with publications on a log x axis,
// faculty members on y and the distinct keyword count as marker size
func ScatterFigure(view academic.ScatterView) Figure {
	n := len(view.Points)
	x := make([]interface{}, 0, n)
	y := make([]interface{}, 0, n)
	sizes := make([]float64, 0, n)
	names := make([]string, 0, n)

	var maxSize float64
	for _, p := range view.Points {
		x = append(x, p.PublicationCount)
		y = append(y, p.FacultyCount)
		size := float64(p.KeywordCount)
		if size > maxSize {
			maxSize = size
		}
		sizes = append(sizes, size)
		names = append(names, p.University)
	}

	// Plotly express default: the largest marker is 20px across in area mode
	sizeRef := 1.0
	if maxSize > 0 {
		sizeRef = 2.0 * maxSize / (20.0 * 20.0)
	}

	layout := darkLayout()
	layout.XAxis = &Axis{Title: Title{Text: "Total Publications"}, Type: "log"}
	layout.YAxis = &Axis{Title: Title{Text: "Faculty Members"}}

	return Figure{
		Data: []Trace{{
			Type:          "scatter",
			Mode:          "markers",
			X:             x,
			Y:             y,
			Text:          names,
			HoverTemplate: "university=%{text}<br>publications=%{x}<br>faculty=%{y}<br>keywords=%{marker.size}<extra></extra>",
			Marker:        &Marker{Size: sizes, SizeMode: "area", SizeRef: sizeRef},
		}},
		Layout: layout,
	}
}

// PieFigure renders the keyword impact shares with percent and label drawn inside each slice
func PieFigure(view academic.PieView) Figure {
	labels := make([]string, 0, len(view.Slices))
	values := make([]float64, 0, len(view.Slices))
	for _, s := range view.Slices {
		labels = append(labels, s.Label)
		values = append(values, s.Value)
	}

	return Figure{
		Data: []Trace{{
			Type:         "pie",
			Labels:       labels,
			Values:       values,
			TextPosition: "inside",
			TextInfo:     "percent+label",
			HoverInfo:    "value",
		}},
		Layout: darkLayout(),
	}
}

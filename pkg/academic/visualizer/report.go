package visualizer

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/athapong/academicworld-mcp/pkg/academic"
)

// The HTML template for the Plotly report page
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <script src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css">
    <style>
        body {
            margin: 0;
            padding: 20px;
            font-family: Arial, sans-serif;
            background-color: #222;
            color: #eee;
        }
        .chart {
            width: 100%;
            min-height: 420px;
            margin-bottom: 24px;
        }
        .summary {
            background-color: rgba(255,255,255,0.05);
            padding: 10px;
            border-radius: 5px;
            margin-bottom: 20px;
        }
        .table {
            color: #eee;
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="summary">
        <p>Keywords: {{range $i, $k := .Keywords}}{{if $i}}, {{end}}{{$k}}{{else}}none selected{{end}}</p>
        <p>Years: {{.Years.Min}} to {{.Years.Max}}</p>
        <p>Universities: {{.UniversityCount}}, Faculty: {{.FacultyCount}}</p>
    </div>

    {{range .Charts}}
    <h2>{{.Title}}</h2>
    <div class="chart" id="{{.ID}}"></div>
    {{end}}

    {{if .Cited}}
    <h2>Most cited publications of {{.CitedFaculty}}</h2>
    {{.Cited}}
    {{end}}

    <script>
        const figures = {{.Figures}};
        for (const [id, fig] of Object.entries(figures)) {
            Plotly.newPlot(id, fig.data, fig.layout, {responsive: true});
        }
    </script>
</body>
</html>
`

var reportPage = template.Must(template.New("report").Parse(reportTemplate))

// Report collects the views rendered on one static dashboard page. Nil views are skipped.
type Report struct {
	Title   string                `json:"title,omitempty"`
	Catalog academic.Catalog      `json:"catalog"`
	Ranking *academic.RankingView `json:"ranking,omitempty"`
	Scatter *academic.ScatterView `json:"scatter,omitempty"`
	Impact  *academic.PieView     `json:"impact,omitempty"`
	Cited   *academic.CitedTable  `json:"cited,omitempty"`
}

type chart struct {
	ID    string
	Title string
}

// figures lists the charts of the report in page order
func (r Report) figures() ([]chart, map[string]Figure) {
	var charts []chart
	figs := make(map[string]Figure)
	add := func(id, title string, fig Figure) {
		charts = append(charts, chart{ID: id, Title: title})
		figs[id] = fig
	}

	if r.Ranking != nil {
		add("uni-keyword-graph", "Top universities by publication count", BarFigure(r.Ranking.Universities))
		add("faculty-keyword-graph", "Top faculty by publication count", BarFigure(r.Ranking.Faculty))
	}
	if r.Scatter != nil {
		add("top-uni-graph", "Research volume by university", ScatterFigure(*r.Scatter))
	}
	if r.Impact != nil {
		add("top-faculty-impact-graph", "Keyword relevant citations by faculty", PieFigure(*r.Impact))
	}
	return charts, figs
}

// Render writes the report page to w
func Render(w io.Writer, r Report) error {
	charts, figs := r.figures()

	figData, err := json.Marshal(figs)
	if err != nil {
		return errors.Wrap(err, "failed to encode figures")
	}

	title := r.Title
	if title == "" {
		title = "AcademicWorld Dashboard"
	}

	data := struct {
		Title           string
		Keywords        []string
		Years           academic.YearRange
		UniversityCount int
		FacultyCount    int
		Charts          []chart
		Figures         template.JS
		Cited           template.HTML
		CitedFaculty    string
	}{
		Title:           title,
		Years:           r.Catalog.Years,
		UniversityCount: len(r.Catalog.Universities),
		FacultyCount:    len(r.Catalog.Faculty),
		Charts:          charts,
		Figures:         template.JS(figData),
	}
	if r.Ranking != nil {
		data.Keywords = r.Ranking.Keywords
		data.Years = r.Ranking.Years
	} else if r.Impact != nil {
		data.Keywords = r.Impact.Keywords
		data.Years = r.Impact.Years
	}
	if r.Cited != nil {
		html, err := CitedTableHTML(*r.Cited)
		if err != nil {
			return err
		}
		data.Cited = html
		data.CitedFaculty = r.Cited.Faculty
	}

	if err := reportPage.Execute(w, data); err != nil {
		return errors.Wrap(err, "failed to render report")
	}
	return nil
}

// ReportWriter writes rendered reports to a file
type ReportWriter struct {
	outputPath string
}

// NewReportWriter creates a writer targeting outputPath
func NewReportWriter(outputPath string) *ReportWriter {
	return &ReportWriter{
		outputPath: outputPath,
	}
}

// Write renders the report and writes it to the output path
func (v *ReportWriter) Write(r Report) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(v.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return err
	}

	return os.WriteFile(v.outputPath, buf.Bytes(), 0644)
}

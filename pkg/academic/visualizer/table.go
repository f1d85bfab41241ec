package visualizer

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"

	"github.com/athapong/academicworld-mcp/pkg/academic"
)

const tableTemplate = `<table class="table table-striped table-bordered table-hover">
    <thead>
        <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
    {{- range .Publications}}
        <tr><td>{{.Title}}</td><td>{{.Citations}}</td></tr>
    {{- end}}
    </tbody>
</table>`

var citedTable = template.Must(template.New("cited").Parse(tableTemplate))

// CitedTableHTML renders the most cited publications as a striped, bordered table
func CitedTableHTML(table academic.CitedTable) (template.HTML, error) {
	var buf bytes.Buffer
	if err := citedTable.Execute(&buf, table); err != nil {
		return "", errors.Wrap(err, "failed to render cited table")
	}
	return template.HTML(buf.String()), nil
}

// Package report renders an ordered sequence of call records into an HTML
// run report, and writes it to disk either as a fresh document or by
// appending rows into an existing report's table.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/hostersuite/wfclient/internal/runlog"
)

// Title is the report document heading.
const Title = "WebFaction API Run Results"

// tbodyClose marks the row insertion point inside a report document.
// Append mode splices new rows immediately before it.
const tbodyClose = "      </tbody>"

const docText = `<!DOCTYPE html>
<html>
  <head>
    <title>{{.Title}}</title>
    <style>
      table#results { border: 2px ridge maroon; background-color: #ffffcc; border-collapse: collapse; }
      #results th, #results td { padding: 0.25em 0.75em; text-align: left; }
      tr.success td { color: #006400; }
      tr.failure td { color: #dc143c; }
    </style>
  </head>
  <body>
    <h1>{{.Title}}</h1>
    <table id="results">
      <thead>
        <tr><th>Time</th><th>Operation</th><th>Status</th><th>Message</th></tr>
      </thead>
      <tbody>
{{range .Records}}{{template "row" .}}{{end}}` + tbodyClose + `
    </table>
  </body>
</html>
`

const rowText = `{{define "row"}}        <tr class="{{.Status}}"><td>{{stamp .Timestamp}}</td><td>{{.Operation}}</td><td>{{.Status}}</td><td>{{.Message}}</td></tr>
{{end}}`

var docTemplate = template.Must(
	template.New("doc").Funcs(template.FuncMap{"stamp": stamp}).Parse(rowText + docText),
)

func stamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

type docData struct {
	Title   string
	Records []runlog.Record
}

// Render produces a complete HTML document with one table row per record.
// Deterministic: identical records yield identical bytes.
func Render(records []runlog.Record) ([]byte, error) {
	var buf bytes.Buffer
	err := docTemplate.Execute(&buf, docData{Title: Title, Records: records})
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderRows produces only the table rows for records, suitable for
// splicing into an existing report document.
func RenderRows(records []runlog.Record) ([]byte, error) {
	var buf bytes.Buffer
	for _, rec := range records {
		if err := docTemplate.ExecuteTemplate(&buf, "row", rec); err != nil {
			return nil, fmt.Errorf("rendering report row: %w", err)
		}
	}
	return buf.Bytes(), nil
}

package reports

import (
	"bytes"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"
)

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"amount": func(v float64) string { return humanize.FormatFloat("#,###.##", v) },
	"stamp":  func(r Report) string { return r.Metadata.Generated.Format("2006-01-02 15:04:05") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Name}}</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 40px; background-color: #f5f5f5; color: #333; }
.container { max-width: 1200px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 8px; }
h1 { color: #1f77b4; border-bottom: 3px solid #1f77b4; padding-bottom: 10px; }
.metadata { color: #666; font-size: 0.9em; margin-bottom: 30px; }
.metrics-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 20px; margin: 30px 0; }
.metric-card { border: 1px solid #ddd; border-radius: 6px; padding: 15px; background-color: #fafafa; }
.metric-label { font-size: 0.85em; color: #666; margin-bottom: 8px; }
.metric-value { font-size: 1.8em; font-weight: bold; color: #1f77b4; margin-bottom: 5px; }
.metric-explanation { font-size: 0.8em; color: #999; font-style: italic; }
.section-title { font-size: 1.3em; margin-top: 40px; margin-bottom: 20px; border-left: 4px solid #1f77b4; padding-left: 10px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
@media print { body { background-color: white; margin: 20px; } }
</style>
</head>
<body>
<div class="container">
<h1>{{.Name}}</h1>
<div class="metadata">
<strong>Generated:</strong> {{stamp .}}<br>
<strong>Filters:</strong> {{.Metadata.Filter}}
</div>
<div class="section-title">Key Metrics</div>
<div class="metrics-grid">
{{- range .Metrics}}
<div class="metric-card">
<div class="metric-label">{{.Label}}</div>
<div class="metric-value">{{.Prefix}}{{.Display}}</div>
<div class="metric-explanation">{{.Explanation}}</div>
</div>
{{- end}}
</div>
{{- if .Charts}}
<div class="section-title">Charts</div>
{{- range .Charts}}
<h3>{{.Title}}</h3>
<table>
<tr><th></th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{- $labels := .Labels}}
{{- range $i, $row := .Rows}}
<tr><td>{{index $labels $i}}</td>{{range $row}}<td>{{amount .}}</td>{{end}}</tr>
{{- end}}
</table>
<p class="metadata">{{.Caption}}</p>
{{- end}}
{{- end}}
{{- range .Metadata.Notes}}
<p class="metadata">{{.}}</p>
{{- end}}
</div>
</body>
</html>
`))

// Render writes the report as a standalone HTML document.
func Render(w io.Writer, r Report) error {
	return page.Execute(w, r)
}

// HTML renders the report into memory.
func HTML(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/bryan-cox/taskboard/internal/dashboard"
)

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"all":     joinOrAll,
	"task":    displayTask,
	"status":  statusLabel,
	"rating":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"grouped": func(c Categories) []outstandingGroup { return groupOutstanding(c) },
}).Parse(`<h2>Task Dashboard</h2>
<p>Workspaces: {{all .View.Selection.Workspaces}}<br>Dates: {{all .View.Selection.Dates}}</p>
<ul>
<li><b>Total Tasks:</b> {{.View.KPIs.Total}}</li>
<li><b>Completed Tasks:</b> {{.View.KPIs.Completed}}</li>
<li><b>Incomplete Tasks:</b> {{.View.KPIs.Incomplete}}</li>
<li><b>Approved Tasks:</b> {{.View.KPIs.Approved}}</li>
</ul>
<h3>Completed vs Incomplete Tasks</h3>
<ul>
{{- range .View.StatusDistribution}}
<li>{{.Label}}: {{.Count}}</li>
{{- end}}
</ul>
<h3>Average Star Ratings for Tasks</h3>
{{- if .View.AverageRatings}}
<ul>
{{- range .View.AverageRatings}}
<li>{{task .Task}}: {{rating .Average}}</li>
{{- end}}
</ul>
{{- else}}
<p>No ratings.</p>
{{- end}}
<h3>Task Images</h3>
{{- if .View.Carousel}}
<ol>
{{- range .View.Carousel}}
<li><a href="{{.ImageURL}}">Task: {{task .Task}}</a> (Completed By: {{.CompletedBy}})</li>
{{- end}}
</ol>
{{- else}}
<p>No images.</p>
{{- end}}
{{- with grouped .Categories}}
<h3>Outstanding Tasks</h3>
<ul>
{{- range .}}
<li>{{.Workspace}}<ul>
{{- range .Tasks}}
<li>{{task .Task}} ({{.Date}})</li>
{{- end}}
</ul></li>
{{- end}}
</ul>
{{- end}}
{{- with .Categories.Unknown}}
<h3>Unrecognised Status</h3>
<ul>
{{- range .}}
<li>{{task .Task}} ({{.Workspace}}, {{.Date}}): {{status .Status}}</li>
{{- end}}
</ul>
{{- end}}
`))

type outstandingGroup struct {
	Workspace string
	Tasks     []PlacedTask
}

func groupOutstanding(c Categories) []outstandingGroup {
	order, groups := c.OutstandingByWorkspace()
	out := make([]outstandingGroup, 0, len(order))
	for _, ws := range order {
		out = append(out, outstandingGroup{Workspace: ws, Tasks: groups[ws]})
	}
	return out
}

// HTML renders the report as an HTML fragment.
func HTML(view dashboard.View, cats Categories) (string, error) {
	var buf bytes.Buffer
	err := htmlReport.Execute(&buf, struct {
		View       dashboard.View
		Categories Categories
	}{View: view, Categories: cats})
	if err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	return buf.String(), nil
}

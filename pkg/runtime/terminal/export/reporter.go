package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rotisserie/eris"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        32,
		ValueWidth:       16,
		UnitWidth:        18,
		DescriptionWidth: 72,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Writer() io.Writer {
	return c.writer
}

const reportTemplate = `
{{.Title}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}{{if .Details}}{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}{{end}}`

const summaryTemplate = `
Records:          {{.RecordCount}}
Total value:      {{.Display.TotalValue}}
Total budget:     {{.Display.TotalBudget}}
Total actual:     {{.Display.TotalActual}}
Variance:         {{.Display.Variance}} ({{.Display.VariancePercentage}})
Completion rate:  {{.Display.CompletionRate}}
At risk:          {{.AtRiskCount}}
{{if .ChangeOrderCount}}Change orders:    {{.ChangeOrderCount}} ({{.PendingChangeOrders}} pending)
{{end}}{{if .TaskCount}}Tasks done:       {{.TasksDone}}/{{.TaskCount}}
{{end}}`

const insightsTemplate = `{{if not .}}No insights.
{{end}}{{range .}}[{{upper .Severity}}] {{.Title}} ({{.Confidence}}% confidence)
  {{.Description}}
  -> {{.Recommendation}}
{{end}}`

func (c *Reporter) funcs() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, truncate(name, c.config.NameWidth),
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, truncate(desc, c.config.DescriptionWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"upper": func(s api.Severity) string { return strings.ToUpper(string(s)) },
	}
}

func (c *Reporter) render(name, tmpl string, data any) error {
	t, err := template.New(name).Funcs(c.funcs()).Parse(tmpl)
	if err != nil {
		return eris.Wrapf(err, "failed to parse %s template", name)
	}
	return eris.Wrapf(t.Execute(c.writer, data), "failed to render %s", name)
}

// Handle prints a report as sectioned tables.
func (c *Reporter) Handle(report *domain.Report) error {
	return c.render("report", reportTemplate, report)
}

func (c *Reporter) Summary(m api.SummaryMetrics) error {
	return c.render("summary", summaryTemplate, m)
}

func (c *Reporter) Insights(insights []api.Insight) error {
	return c.render("insights", insightsTemplate, insights)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package dashboard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/format"
	"github.com/de-tools/project-atlas/pkg/services/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BuildReport lays a dashboard out as report sections: totals, status breakdown, per-record risk
// and insights.
func BuildReport(
	d domain.Dashboard,
	recs []domain.Record,
	settings metrics.Settings,
	f *format.Formatter,
	generatedAt time.Time,
) *domain.Report {
	m := d.Metrics
	report := &domain.Report{
		Title:       fmt.Sprintf("%s %s Report", d.ProjectID, titleCase(string(d.Kind))),
		ProjectID:   d.ProjectID,
		Kind:        d.Kind,
		GeneratedAt: generatedAt,
		TotalAmount: m.TotalValue,
		Currency:    format.DefaultCurrency,
	}

	report.Sections = append(report.Sections, domain.ReportSection{
		Title: "Summary",
		Summary: map[string]string{
			"Records":          strconv.Itoa(m.RecordCount),
			"Total value":      f.Currency(m.TotalValue, format.DefaultCurrency),
			"Total budget":     f.Currency(m.TotalBudget, format.DefaultCurrency),
			"Total actual":     f.Currency(m.TotalActual, format.DefaultCurrency),
			"Variance":         f.Currency(m.Variance, format.DefaultCurrency),
			"Variance percent": f.Percent(m.VariancePercentage),
			"Completion rate":  f.Ratio(m.CompletionRate),
			"At risk":          strconv.Itoa(m.AtRiskCount),
		},
	})

	statuses := make([]domain.Status, 0, len(m.CountByStatus))
	for st := range m.CountByStatus {
		statuses = append(statuses, st)
	}
	slices.Sort(statuses)
	statusSection := domain.ReportSection{Title: "Status"}
	for _, st := range statuses {
		statusSection.Details = append(statusSection.Details, domain.ReportDetail{
			Name:  humanize(string(st)),
			Value: strconv.Itoa(m.CountByStatus[st]),
			Unit:  "records",
		})
	}
	report.Sections = append(report.Sections, statusSection)

	riskSection := domain.ReportSection{Title: "Records"}
	for _, r := range recs {
		risk := settings.Classify(r)
		riskSection.Details = append(riskSection.Details, domain.ReportDetail{
			Name:  displayName(r),
			Value: f.Currency(r.Actual, format.DefaultCurrency),
			Description: fmt.Sprintf("budget %s, variance %s, risk %s, due %s",
				f.Currency(r.Budget, format.DefaultCurrency),
				f.Percent(metrics.RecordVariancePct(r)),
				risk,
				f.Date(r.DueDate),
			),
		})
	}
	report.Sections = append(report.Sections, riskSection)

	insightSection := domain.ReportSection{Title: "Insights"}
	for _, in := range d.Insights {
		insightSection.Details = append(insightSection.Details, domain.ReportDetail{
			Name:        in.Title,
			Value:       strings.ToUpper(in.Severity.String()),
			Unit:        fmt.Sprintf("(%d%% confidence)", in.Confidence),
			Description: strings.TrimSpace(in.Description + " " + in.Recommendation),
		})
	}
	report.Sections = append(report.Sections, insightSection)

	return report
}

func humanize(s string) string {
	return titleCase(strings.ReplaceAll(s, "_", " "))
}

// Casers keep state and cannot be shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func displayName(r domain.Record) string {
	if r.Name == "" {
		return r.ID
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.ID)
}

package adapters

import (
	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/format"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityInfo:
		return api.SeverityInfo
	case domain.SeveritySuccess:
		return api.SeveritySuccess
	case domain.SeverityWarning:
		return api.SeverityWarning
	case domain.SeverityCritical:
		return api.SeverityCritical
	default:
		return api.SeverityInfo
	}
}

func MapInsightDomainToApi(i domain.Insight) api.Insight {
	return api.Insight{
		ID:             i.ID,
		Severity:       MapSeverityDomainToApi(i.Severity),
		Category:       string(i.Category),
		Title:          i.Title,
		Description:    i.Description,
		Confidence:     i.Confidence,
		Recommendation: i.Recommendation,
	}
}

func MapInsightsDomainToApi(insights []domain.Insight) []api.Insight {
	res := make([]api.Insight, 0, len(insights))
	for _, i := range insights {
		res = append(res, MapInsightDomainToApi(i))
	}
	return res
}

// MapSummaryMetricsDomainToApi converts m and fills the display strings using f.
func MapSummaryMetricsDomainToApi(m domain.SummaryMetrics, f *format.Formatter) api.SummaryMetrics {
	res := api.SummaryMetrics{
		RecordCount:         m.RecordCount,
		TotalValue:          m.TotalValue,
		TotalBudget:         m.TotalBudget,
		TotalActual:         m.TotalActual,
		Variance:            m.Variance,
		VariancePercentage:  m.VariancePercentage,
		CountByStatus:       make(map[string]int, len(m.CountByStatus)),
		CountByRisk:         make(map[string]int, len(m.CountByRisk)),
		ExecutedCount:       m.ExecutedCount,
		CompletionRate:      m.CompletionRate,
		AtRiskCount:         m.AtRiskCount,
		ChangeOrderCount:    m.ChangeOrderCount,
		PendingChangeOrders: m.PendingChangeOrders,
		ChangeOrderValue:    m.ChangeOrderValue,
		TaskCount:           m.TaskCount,
		TasksDone:           m.TasksDone,
		Display: api.SummaryDisplay{
			TotalValue:         f.Currency(m.TotalValue, format.DefaultCurrency),
			TotalBudget:        f.Currency(m.TotalBudget, format.DefaultCurrency),
			TotalActual:        f.Currency(m.TotalActual, format.DefaultCurrency),
			Variance:           f.Currency(m.Variance, format.DefaultCurrency),
			VariancePercentage: f.Percent(m.VariancePercentage),
			CompletionRate:     f.Ratio(m.CompletionRate),
		},
	}
	for k, v := range m.CountByStatus {
		res.CountByStatus[string(k)] = v
	}
	for k, v := range m.CountByRisk {
		res.CountByRisk[string(k)] = v
	}
	return res
}

func MapDashboardDomainToApi(d domain.Dashboard, f *format.Formatter) api.Dashboard {
	return api.Dashboard{
		ProjectID: d.ProjectID,
		Kind:      string(d.Kind),
		Metrics:   MapSummaryMetricsDomainToApi(d.Metrics, f),
		Insights:  MapInsightsDomainToApi(d.Insights),
	}
}

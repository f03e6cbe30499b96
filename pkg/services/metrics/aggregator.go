// Package metrics turns a collection of normalized records into SummaryMetrics.
package metrics

import (
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Aggregator is stateless apart from its thresholds and safe for concurrent use.
type Aggregator struct {
	settings Settings
}

func NewAggregator(settings Settings) *Aggregator {
	return &Aggregator{settings: settings}
}

// Settings returns the risk thresholds the aggregator classifies with.
func (a *Aggregator) Settings() Settings {
	return a.settings
}

// Aggregate computes summary metrics for records. Currency sums are exact decimal sums, so the
// result does not depend on the order of records.
func (a *Aggregator) Aggregate(records []domain.Record) domain.SummaryMetrics {
	m := domain.SummaryMetrics{
		RecordCount:   len(records),
		CountByStatus: map[domain.Status]int{},
		CountByRisk:   map[domain.RiskLevel]int{},
	}

	var (
		totalValue  = decimal.Zero
		totalBudget = decimal.Zero
		totalActual = decimal.Zero
		coValue     = decimal.Zero
	)

	for _, r := range records {
		totalValue = totalValue.Add(finite(r.ContractValue))
		totalBudget = totalBudget.Add(finite(r.Budget))
		totalActual = totalActual.Add(finite(r.Actual))

		m.CountByStatus[r.Status]++
		if r.Kind.IsExecuted(r.Status) {
			m.ExecutedCount++
		}

		risk := a.settings.Classify(r)
		m.CountByRisk[risk]++
		if risk.AtRisk() {
			m.AtRiskCount++
		}

		for _, co := range r.ChangeOrders {
			m.ChangeOrderCount++
			if co.Status == domain.ChangeOrderPending {
				m.PendingChangeOrders++
			}
			if co.Status != domain.ChangeOrderRejected {
				coValue = coValue.Add(finite(co.Amount))
			}
		}

		for _, t := range r.Tasks {
			m.TaskCount++
			if t.Done {
				m.TasksDone++
			}
		}
	}

	m.TotalValue = toFloat(totalValue)
	m.TotalBudget = toFloat(totalBudget)
	m.TotalActual = toFloat(totalActual)
	m.Variance = toFloat(totalActual.Sub(totalBudget))
	m.VariancePercentage = variancePct(totalActual, totalBudget)
	m.ChangeOrderValue = toFloat(coValue)

	if m.RecordCount > 0 {
		m.CompletionRate = float64(m.ExecutedCount) / float64(m.RecordCount)
	}

	return m
}

// ClassifyAll returns the risk level of every record keyed by record id.
func (a *Aggregator) ClassifyAll(records []domain.Record) map[string]domain.RiskLevel {
	levels := make(map[string]domain.RiskLevel, len(records))
	for _, r := range records {
		levels[r.ID] = a.settings.Classify(r)
	}
	return levels
}

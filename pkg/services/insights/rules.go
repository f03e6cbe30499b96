package insights

import (
	"fmt"
	"sort"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/metrics"
)

// Rule maps a metrics snapshot to at most one insight. Rules must be pure and total.
type Rule interface {
	ID() string
	Evaluate(m domain.SummaryMetrics, records []domain.Record) (domain.Insight, bool)
}

// Settings contains the thresholds of the default rule set
type Settings struct {
	// OverrunPct fires the critical budget-overrun insight above this variance (default: 10)
	OverrunPct float64 `mapstructure:"overrun_pct"`
	// WatchPct fires the budget-watch warning above this variance, up to OverrunPct (default: 5)
	WatchPct float64 `mapstructure:"watch_pct"`
	// SavingsPct fires the under-budget insight below minus this variance (default: 5)
	SavingsPct float64 `mapstructure:"savings_pct"`
	// RiskShare is the share of at-risk records that triggers a concentration warning (default: 0.25)
	RiskShare float64 `mapstructure:"risk_share"`
	// ChangeOrderShare is the share of total value in open change orders that triggers a warning (default: 0.05)
	ChangeOrderShare float64 `mapstructure:"change_order_share"`
	// MinCompletionRate below which progress is flagged as lagging (default: 0.5)
	MinCompletionRate float64 `mapstructure:"min_completion_rate"`
	// MinRecordsForCompletion is the smallest set completion lag is judged on (default: 3)
	MinRecordsForCompletion int `mapstructure:"min_records_for_completion"`
	// RecordOverrunPct fires the per-record overrun insight above this variance (default: 20)
	RecordOverrunPct float64 `mapstructure:"record_overrun_pct"`
}

// DefaultSettings returns the default rule thresholds
func DefaultSettings() Settings {
	return Settings{
		OverrunPct:              10,
		WatchPct:                5,
		SavingsPct:              5,
		RiskShare:               0.25,
		ChangeOrderShare:        0.05,
		MinCompletionRate:       0.5,
		MinRecordsForCompletion: 3,
		RecordOverrunPct:        20,
	}
}

// DefaultRules returns the ordered rule list. The order is the order insights are reported in.
func DefaultRules(s Settings) []Rule {
	return []Rule{
		&BudgetOverrunRule{Threshold: s.OverrunPct},
		&BudgetWatchRule{Lower: s.WatchPct, Upper: s.OverrunPct},
		&UnderBudgetRule{Threshold: s.SavingsPct},
		&RiskConcentrationRule{Share: s.RiskShare},
		&ChangeOrderExposureRule{Share: s.ChangeOrderShare},
		&CompletionLagRule{MinRate: s.MinCompletionRate, MinRecords: s.MinRecordsForCompletion},
		&RecordOverrunRule{Threshold: s.RecordOverrunPct},
	}
}

type BudgetOverrunRule struct {
	Threshold float64
}

func (r *BudgetOverrunRule) ID() string { return "budget-overrun" }

func (r *BudgetOverrunRule) Evaluate(m domain.SummaryMetrics, _ []domain.Record) (domain.Insight, bool) {
	if m.RecordCount == 0 || m.VariancePercentage <= r.Threshold {
		return domain.Insight{}, false
	}
	return domain.Insight{
		ID:             r.ID(),
		Severity:       domain.SeverityCritical,
		Category:       domain.CategoryBudget,
		Title:          "Budget overrun detected",
		Description:    fmt.Sprintf("Actual costs are %.1f%% over budget, exceeding the %.0f%% tolerance.", m.VariancePercentage, r.Threshold),
		Confidence:     95,
		Recommendation: "Review the largest overruns with the project team and freeze discretionary commitments until a recovery plan is approved.",
	}, true
}

type BudgetWatchRule struct {
	Lower float64
	Upper float64
}

func (r *BudgetWatchRule) ID() string { return "budget-watch" }

func (r *BudgetWatchRule) Evaluate(m domain.SummaryMetrics, _ []domain.Record) (domain.Insight, bool) {
	if m.RecordCount == 0 || m.VariancePercentage <= r.Lower || m.VariancePercentage > r.Upper {
		return domain.Insight{}, false
	}
	return domain.Insight{
		ID:             r.ID(),
		Severity:       domain.SeverityWarning,
		Category:       domain.CategoryBudget,
		Title:          "Costs trending over budget",
		Description:    fmt.Sprintf("Actual costs are %.1f%% over budget.", m.VariancePercentage),
		Confidence:     85,
		Recommendation: "Track committed costs weekly and confirm remaining scope is covered by contingency.",
	}, true
}

type UnderBudgetRule struct {
	Threshold float64
}

func (r *UnderBudgetRule) ID() string { return "under-budget" }

func (r *UnderBudgetRule) Evaluate(m domain.SummaryMetrics, _ []domain.Record) (domain.Insight, bool) {
	if m.RecordCount == 0 || m.VariancePercentage >= -r.Threshold {
		return domain.Insight{}, false
	}
	return domain.Insight{
		ID:             r.ID(),
		Severity:       domain.SeveritySuccess,
		Category:       domain.CategoryBudget,
		Title:          "Savings against budget",
		Description:    fmt.Sprintf("Actual costs are %.1f%% under budget.", -m.VariancePercentage),
		Confidence:     70,
		Recommendation: "Confirm scope is complete before releasing savings to contingency.",
	}, true
}

type RiskConcentrationRule struct {
	Share float64
}

func (r *RiskConcentrationRule) ID() string { return "risk-concentration" }

func (r *RiskConcentrationRule) Evaluate(m domain.SummaryMetrics, _ []domain.Record) (domain.Insight, bool) {
	if m.RecordCount == 0 || m.AtRiskCount == 0 {
		return domain.Insight{}, false
	}
	share := float64(m.AtRiskCount) / float64(m.RecordCount)
	if share < r.Share {
		return domain.Insight{}, false
	}
	return domain.Insight{
		ID:             r.ID(),
		Severity:       domain.SeverityWarning,
		Category:       domain.CategoryRisk,
		Title:          "High share of at-risk items",
		Description:    fmt.Sprintf("%d of %d items (%.0f%%) are classified high or critical risk.", m.AtRiskCount, m.RecordCount, share*100),
		Confidence:     80,
		Recommendation: "Schedule a risk review for the flagged items and assign an owner to each mitigation.",
	}, true
}

type ChangeOrderExposureRule struct {
	Share float64
}

func (r *ChangeOrderExposureRule) ID() string { return "change-order-exposure" }

func (r *ChangeOrderExposureRule) Evaluate(m domain.SummaryMetrics, _ []domain.Record) (domain.Insight, bool) {
	if m.TotalValue <= 0 || m.ChangeOrderValue <= 0 {
		return domain.Insight{}, false
	}
	share := m.ChangeOrderValue / m.TotalValue
	if share <= r.Share {
		return domain.Insight{}, false
	}
	return domain.Insight{
		ID:             r.ID(),
		Severity:       domain.SeverityWarning,
		Category:       domain.CategoryContracts,
		Title:          "Change order exposure",
		Description:    fmt.Sprintf("Open and approved change orders amount to %.1f%% of contract value (%d pending).", share*100, m.PendingChangeOrders),
		Confidence:     80,
		Recommendation: "Resolve pending change orders and verify they are reflected in the cost forecast.",
	}, true
}

type CompletionLagRule struct {
	MinRate    float64
	MinRecords int
}

func (r *CompletionLagRule) ID() string { return "completion-lag" }

func (r *CompletionLagRule) Evaluate(m domain.SummaryMetrics, _ []domain.Record) (domain.Insight, bool) {
	if m.RecordCount == 0 || m.RecordCount < r.MinRecords || m.CompletionRate >= r.MinRate {
		return domain.Insight{}, false
	}
	return domain.Insight{
		ID:             r.ID(),
		Severity:       domain.SeverityInfo,
		Category:       domain.CategorySchedule,
		Title:          "Progress is lagging",
		Description:    fmt.Sprintf("Only %d of %d items (%.0f%%) are complete.", m.ExecutedCount, m.RecordCount, m.CompletionRate*100),
		Confidence:     75,
		Recommendation: "Prioritize items blocking downstream work and confirm dates with vendors.",
	}, true
}

// RecordOverrunRule reports the single record with the largest overrun.
type RecordOverrunRule struct {
	Threshold float64
}

func (r *RecordOverrunRule) ID() string { return "record-overrun" }

func (r *RecordOverrunRule) Evaluate(_ domain.SummaryMetrics, records []domain.Record) (domain.Insight, bool) {
	type candidate struct {
		record   domain.Record
		variance float64
	}

	var over []candidate
	for _, rec := range records {
		if v := metrics.RecordVariancePct(rec); v > r.Threshold {
			over = append(over, candidate{record: rec, variance: v})
		}
	}
	if len(over) == 0 {
		return domain.Insight{}, false
	}

	sort.Slice(over, func(i, j int) bool {
		if over[i].variance == over[j].variance {
			return over[i].record.ID < over[j].record.ID
		}
		return over[i].variance > over[j].variance
	})

	top := over[0]
	name := top.record.Name
	if name == "" {
		name = top.record.ID
	}
	return domain.Insight{
		ID:          r.ID(),
		Severity:    domain.SeverityCritical,
		Category:    domain.CategoryBudget,
		Title:       fmt.Sprintf("%s is %.0f%% over budget", name, top.variance),
		Description: fmt.Sprintf("%d item(s) exceed budget by more than %.0f%%; %s is the largest overrun.", len(over), r.Threshold, name),
		Confidence:  90,
		Recommendation: "Audit the scope and invoices of the item and negotiate a cost recovery or scope " +
			"reduction with the vendor.",
	}, true
}

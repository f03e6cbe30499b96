package insights

import (
	"testing"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derive(records []domain.Record) []domain.Insight {
	m := metrics.NewAggregator(metrics.DefaultSettings()).Aggregate(records)
	return NewDefaultEngine(DefaultSettings()).DeriveInsights(m, records)
}

func ids(insights []domain.Insight) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.ID)
	}
	return out
}

func find(insights []domain.Insight, id string) (domain.Insight, bool) {
	for _, in := range insights {
		if in.ID == id {
			return in, true
		}
	}
	return domain.Insight{}, false
}

func TestDeriveInsights_EmptyRecords(t *testing.T) {
	got := derive(nil)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDeriveInsights_BalancedVarianceHasNoOverrun(t *testing.T) {
	got := derive([]domain.Record{
		{ID: "a", Kind: domain.RecordKindBuyout, Budget: 100, Actual: 120},
		{ID: "b", Kind: domain.RecordKindBuyout, Budget: 100, Actual: 80},
	})

	_, overrun := find(got, "budget-overrun")
	assert.False(t, overrun)
	_, watch := find(got, "budget-watch")
	assert.False(t, watch)
}

func TestDeriveInsights_CriticalOverrun(t *testing.T) {
	got := derive([]domain.Record{
		{ID: "a", Kind: domain.RecordKindBuyout, Budget: 100, Actual: 150},
	})

	insight, ok := find(got, "budget-overrun")
	require.True(t, ok)
	assert.Equal(t, domain.SeverityCritical, insight.Severity)
	assert.Equal(t, 95, insight.Confidence)
	assert.Equal(t, domain.CategoryBudget, insight.Category)
	assert.Contains(t, insight.Description, "50.0%")
}

func TestDeriveInsights_RuleOrderAndIndependence(t *testing.T) {
	records := []domain.Record{
		{ID: "steel", Name: "Structural Steel", Kind: domain.RecordKindBuyout, Status: domain.StatusAwarded,
			Budget: 1000, Actual: 1400, ContractValue: 1000,
			ChangeOrders: []domain.ChangeOrder{{ID: "co-1", Amount: 200, Status: domain.ChangeOrderPending}}},
		{ID: "glass", Kind: domain.RecordKindBuyout, Status: domain.StatusBidding,
			Budget: 1000, Actual: 1000, ContractValue: 1000},
		{ID: "hvac", Kind: domain.RecordKindBuyout, Status: domain.StatusPending,
			Budget: 1000, Actual: 1000, ContractValue: 1000},
	}

	got := derive(records)

	assert.Equal(t, []string{
		"budget-overrun",
		"risk-concentration",
		"change-order-exposure",
		"completion-lag",
		"record-overrun",
	}, ids(got))

	top, ok := find(got, "record-overrun")
	require.True(t, ok)
	assert.Equal(t, "Structural Steel is 40% over budget", top.Title)
}

func TestDeriveInsights_Deterministic(t *testing.T) {
	records := []domain.Record{
		{ID: "b", Kind: domain.RecordKindBuyout, Budget: 100, Actual: 130},
		{ID: "a", Kind: domain.RecordKindBuyout, Budget: 100, Actual: 130},
		{ID: "c", Kind: domain.RecordKindBuyout, Budget: 100, Actual: 50},
	}
	m := metrics.NewAggregator(metrics.DefaultSettings()).Aggregate(records)
	engine := NewDefaultEngine(DefaultSettings())

	first := engine.DeriveInsights(m, records)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.DeriveInsights(m, records))
	}

	top, ok := find(first, "record-overrun")
	require.True(t, ok)
	assert.Equal(t, "a is 30% over budget", top.Title)
}

func TestBudgetRules_Boundaries(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		name     string
		variance float64
		want     []string
	}{
		{"on budget", 0, nil},
		{"at watch threshold", 5, nil},
		{"watch", 7.5, []string{"budget-watch"}},
		{"at overrun threshold", 10, []string{"budget-watch"}},
		{"overrun", 10.01, []string{"budget-overrun"}},
		{"at savings threshold", -5, nil},
		{"savings", -12, []string{"under-budget"}},
	}

	rules := []Rule{
		&BudgetOverrunRule{Threshold: s.OverrunPct},
		&BudgetWatchRule{Lower: s.WatchPct, Upper: s.OverrunPct},
		&UnderBudgetRule{Threshold: s.SavingsPct},
	}
	engine := NewEngine(rules)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.SummaryMetrics{RecordCount: 1, VariancePercentage: tt.variance}
			got := ids(engine.DeriveInsights(m, nil))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompletionLagRule(t *testing.T) {
	rule := &CompletionLagRule{MinRate: 0.5, MinRecords: 3}

	_, ok := rule.Evaluate(domain.SummaryMetrics{RecordCount: 2, CompletionRate: 0}, nil)
	assert.False(t, ok, "too few records")

	_, ok = rule.Evaluate(domain.SummaryMetrics{RecordCount: 4, ExecutedCount: 2, CompletionRate: 0.5}, nil)
	assert.False(t, ok, "at threshold")

	insight, ok := rule.Evaluate(domain.SummaryMetrics{RecordCount: 4, ExecutedCount: 1, CompletionRate: 0.25}, nil)
	assert.True(t, ok)
	assert.Equal(t, "Only 1 of 4 items (25%) are complete.", insight.Description)
}

func TestChangeOrderExposureRule_ZeroValue(t *testing.T) {
	rule := &ChangeOrderExposureRule{Share: 0.05}

	_, ok := rule.Evaluate(domain.SummaryMetrics{RecordCount: 1, ChangeOrderValue: 500}, nil)
	assert.False(t, ok)
}

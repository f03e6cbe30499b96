package domain

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// AtRisk reports whether the level counts towards SummaryMetrics.AtRiskCount.
func (r RiskLevel) AtRisk() bool {
	return r == RiskHigh || r == RiskCritical
}

// SummaryMetrics is computed fresh from a record collection and never mutated afterwards.
type SummaryMetrics struct {
	RecordCount        int
	TotalValue         float64
	TotalBudget        float64
	TotalActual        float64
	Variance           float64
	VariancePercentage float64
	CountByStatus      map[Status]int
	CountByRisk        map[RiskLevel]int
	ExecutedCount      int
	CompletionRate     float64
	AtRiskCount        int

	ChangeOrderCount    int
	PendingChangeOrders int
	ChangeOrderValue    float64

	TaskCount int
	TasksDone int
}

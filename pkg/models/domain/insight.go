package domain

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityCritical
)

type InsightCategory string

const (
	CategoryBudget    InsightCategory = "budget"
	CategoryRisk      InsightCategory = "risk"
	CategorySchedule  InsightCategory = "schedule"
	CategoryContracts InsightCategory = "contracts"
)

// Insight is an advisory derived from a SummaryMetrics snapshot. It is never persisted.
type Insight struct {
	ID             string
	Severity       Severity
	Category       InsightCategory
	Title          string
	Description    string
	Confidence     int // 0..100
	Recommendation string
}

// Dashboard bundles what a dashboard view renders for one project and record kind.
type Dashboard struct {
	ProjectID string
	Kind      RecordKind
	Metrics   SummaryMetrics
	Insights  []Insight
}

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

package api

type SummaryMetrics struct {
	RecordCount         int            `json:"record_count"`
	TotalValue          float64        `json:"total_value"`
	TotalBudget         float64        `json:"total_budget"`
	TotalActual         float64        `json:"total_actual"`
	Variance            float64        `json:"variance"`
	VariancePercentage  float64        `json:"variance_percentage"`
	CountByStatus       map[string]int `json:"count_by_status"`
	CountByRisk         map[string]int `json:"count_by_risk"`
	ExecutedCount       int            `json:"executed_count"`
	CompletionRate      float64        `json:"completion_rate"`
	AtRiskCount         int            `json:"at_risk_count"`
	ChangeOrderCount    int            `json:"change_order_count"`
	PendingChangeOrders int            `json:"pending_change_orders"`
	ChangeOrderValue    float64        `json:"change_order_value"`
	TaskCount           int            `json:"task_count"`
	TasksDone           int            `json:"tasks_done"`

	// Display strings for the dashboard cards.
	Display SummaryDisplay `json:"display"`
}

type SummaryDisplay struct {
	TotalValue         string `json:"total_value"`
	TotalBudget        string `json:"total_budget"`
	TotalActual        string `json:"total_actual"`
	Variance           string `json:"variance"`
	VariancePercentage string `json:"variance_percentage"`
	CompletionRate     string `json:"completion_rate"`
}

type Dashboard struct {
	ProjectID string         `json:"project_id"`
	Kind      string         `json:"kind"`
	Metrics   SummaryMetrics `json:"metrics"`
	Insights  []Insight      `json:"insights"`
}

package store

import "time"

// RecordRow is a record as persisted in the records table. Nested collections are kept in Payload.
type RecordRow struct {
	ID            string
	ProjectID     string
	Kind          string
	Name          string
	Status        string
	Budget        float64
	ContractValue float64
	Actual        float64
	Payload       []byte // JSON of RecordPayload
	UpdatedAt     time.Time
}

type RecordPayload struct {
	Rating          float64              `json:"rating"`
	PercentComplete float64              `json:"percent_complete"`
	StartDate       *time.Time           `json:"start_date,omitempty"`
	DueDate         *time.Time           `json:"due_date,omitempty"`
	Milestones      []MilestonePayload   `json:"milestones,omitempty"`
	ChangeOrders    []ChangeOrderPayload `json:"change_orders,omitempty"`
	Tasks           []TaskPayload        `json:"tasks,omitempty"`
}

type MilestonePayload struct {
	Name      string     `json:"name"`
	Due       *time.Time `json:"due,omitempty"`
	Completed *time.Time `json:"completed,omitempty"`
}

type ChangeOrderPayload struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type TaskPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Done bool   `json:"done"`
}

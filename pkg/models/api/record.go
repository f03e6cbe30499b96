package api

import "time"

type Milestone struct {
	Name      string     `json:"name"`
	Due       *time.Time `json:"due"`
	Completed *time.Time `json:"completed"`
}

type ChangeOrder struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type Task struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Done bool   `json:"done"`
}

type Record struct {
	ID              string        `json:"id"`
	Kind            string        `json:"kind"`
	Name            string        `json:"name"`
	ProjectID       string        `json:"project_id"`
	Status          string        `json:"status"`
	Risk            string        `json:"risk"`
	Budget          float64       `json:"budget"`
	ContractValue   float64       `json:"contract_value"`
	Actual          float64       `json:"actual"`
	Rating          float64       `json:"rating"`
	PercentComplete float64       `json:"percent_complete"`
	StartDate       *time.Time    `json:"start_date"`
	DueDate         *time.Time    `json:"due_date"`
	Milestones      []Milestone   `json:"milestones"`
	ChangeOrders    []ChangeOrder `json:"change_orders"`
	Tasks           []Task        `json:"tasks"`
}

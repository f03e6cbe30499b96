package api

import "time"

type ReassignRequest struct {
	EmployeeID string `json:"employee_id"`
	ToProject  string `json:"to_project"`
}

type ReassignResponse struct {
	CommandID string `json:"command_id"`
	Employee  Record `json:"employee"`
}

type Allocation struct {
	ProjectID string `json:"project_id"`
	Assigned  int    `json:"assigned"`
	OnLeave   int    `json:"on_leave"`
	Available int    `json:"available"`
}

type TransitionRequest struct {
	Event string `json:"event"`
}

type Sync struct {
	ID           string     `json:"id"`
	Profile      string     `json:"profile"`
	ProjectID    string     `json:"project_id"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	RecordCount  int64      `json:"record_count"`
	Error        *string    `json:"error,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}

package domain

import "time"

type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusFinished  SyncStatus = "finished"
	SyncStatusFailed    SyncStatus = "failed"
	SyncStatusCancelled SyncStatus = "cancelled"
)

// Sync is the state of a record sync workflow for a profile and project.
type Sync struct {
	ID           string
	Profile      string
	ProjectID    string
	Status       SyncStatus
	CreatedAt    time.Time
	LastSyncedAt *time.Time
	RecordCount  int64
	Error        *string
}

package store

import "time"

type SyncState struct {
	ID           string
	Profile      string
	ProjectID    string
	Status       string
	CreatedAt    time.Time
	LastSyncedAt *time.Time
	RecordCount  int64
	Error        *string
}

type SyncIdentity struct {
	Profile   string
	ProjectID string
}

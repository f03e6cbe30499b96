package adapters

import (
	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
)

func MapStoreSyncToDomain(s *store.SyncState) *domain.Sync {
	if s == nil {
		return nil
	}

	return &domain.Sync{
		ID:           s.ID,
		Profile:      s.Profile,
		ProjectID:    s.ProjectID,
		Status:       domain.SyncStatus(s.Status),
		CreatedAt:    s.CreatedAt,
		LastSyncedAt: s.LastSyncedAt,
		RecordCount:  s.RecordCount,
		Error:        s.Error,
	}
}

func MapDomainSyncToStore(s *domain.Sync) *store.SyncState {
	return &store.SyncState{
		ID:           s.ID,
		Profile:      s.Profile,
		ProjectID:    s.ProjectID,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		LastSyncedAt: s.LastSyncedAt,
		RecordCount:  s.RecordCount,
		Error:        s.Error,
	}
}

func MapDomainSyncToApi(s domain.Sync) api.Sync {
	return api.Sync{
		ID:           s.ID,
		Profile:      s.Profile,
		ProjectID:    s.ProjectID,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		LastSyncedAt: s.LastSyncedAt,
		RecordCount:  s.RecordCount,
		Error:        s.Error,
	}
}

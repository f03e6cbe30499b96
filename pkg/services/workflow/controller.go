package workflow

import (
	"context"
	"database/sql"
	"sync"

	"github.com/de-tools/project-atlas/pkg/adapters"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
	"github.com/de-tools/project-atlas/pkg/services/config"
	"github.com/de-tools/project-atlas/pkg/services/dashboard"
	"github.com/de-tools/project-atlas/pkg/store/duckdb/workflow"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Controller interface {
	Start(ctx context.Context, profile, projectID string) (*domain.Sync, error)
	Cancel(ctx context.Context, profile, projectID string) error
	List(ctx context.Context) ([]domain.Sync, error)
}

// SourceFactory opens the raw source a profile points at.
type SourceFactory func(ctx context.Context, profile domain.SourceProfile) (dashboard.RawSource, error)

type syncDescriptor struct {
	cancelFunc context.CancelFunc
	sync       *store.SyncState
	runner     *Runner
}

type DefaultController struct {
	db         *sql.DB
	syncStore  workflow.Store
	registry   config.Registry
	openSource SourceFactory
	writer     dashboard.Writer
	config     RunnerConfig

	mu    sync.Mutex
	syncs map[store.SyncIdentity]syncDescriptor
}

func NewController(
	db *sql.DB,
	syncStore workflow.Store,
	registry config.Registry,
	openSource SourceFactory,
	writer dashboard.Writer,
	runnerConfig RunnerConfig,
) *DefaultController {
	return &DefaultController{
		db:         db,
		syncStore:  syncStore,
		registry:   registry,
		openSource: openSource,
		writer:     writer,
		config:     runnerConfig,
		syncs:      make(map[store.SyncIdentity]syncDescriptor),
	}
}

// Init resumes the syncs that were running when the service last stopped.
func (ctrl *DefaultController) Init(ctx context.Context) error {
	syncs, err := ctrl.syncStore.ListSyncs(ctx, []string{string(domain.SyncStatusRunning)})
	if err != nil {
		return err
	}

	for _, st := range syncs {
		if err := ctrl.startSync(ctx, st); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("sync", st.ID).Msg("failed to resume sync")
			msg := err.Error()
			if err := ctrl.syncStore.UpdateSyncStatus(ctx, st.ID, string(domain.SyncStatusFailed), &msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ctrl *DefaultController) Start(ctx context.Context, profile, projectID string) (*domain.Sync, error) {
	if err := domain.ValidateProjectID(projectID); err != nil {
		return nil, err
	}

	id := store.SyncIdentity{Profile: profile, ProjectID: projectID}
	if ctrl.running(id) {
		return nil, eris.Wrapf(domain.ErrAlreadyRunning, "sync %s/%s", profile, projectID)
	}

	st, err := ctrl.syncStore.CreateSync(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ctrl.startSync(ctx, st); err != nil {
		msg := err.Error()
		if uErr := ctrl.syncStore.UpdateSyncStatus(ctx, st.ID, string(domain.SyncStatusFailed), &msg); uErr != nil {
			zerolog.Ctx(ctx).Error().Err(uErr).Str("sync", st.ID).Msg("failed to mark sync failed")
		}
		return nil, err
	}
	return adapters.MapStoreSyncToDomain(st), nil
}

func (ctrl *DefaultController) Cancel(ctx context.Context, profile, projectID string) error {
	id := store.SyncIdentity{Profile: profile, ProjectID: projectID}

	ctrl.mu.Lock()
	desc, ok := ctrl.syncs[id]
	if ok {
		delete(ctrl.syncs, id)
	}
	ctrl.mu.Unlock()

	if !ok {
		return eris.Wrapf(domain.ErrNotFound, "sync not running: %s/%s", profile, projectID)
	}

	desc.cancelFunc()
	<-desc.runner.Done()

	return ctrl.syncStore.UpdateSyncStatus(ctx, desc.sync.ID, string(domain.SyncStatusCancelled), nil)
}

func (ctrl *DefaultController) List(ctx context.Context) ([]domain.Sync, error) {
	syncs, err := ctrl.syncStore.ListSyncs(ctx, nil)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Sync, 0, len(syncs))
	for _, st := range syncs {
		res = append(res, *adapters.MapStoreSyncToDomain(st))
	}
	return res, nil
}

// Shutdown stops every runner and waits for them. Their syncs stay running so Init resumes them.
func (ctrl *DefaultController) Shutdown() {
	ctrl.mu.Lock()
	syncs := ctrl.syncs
	ctrl.syncs = make(map[store.SyncIdentity]syncDescriptor)
	ctrl.mu.Unlock()

	for _, desc := range syncs {
		desc.cancelFunc()
	}
	for _, desc := range syncs {
		<-desc.runner.Done()
	}
}

func (ctrl *DefaultController) running(id store.SyncIdentity) bool {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	_, ok := ctrl.syncs[id]
	return ok
}

func (ctrl *DefaultController) startSync(ctx context.Context, st *store.SyncState) error {
	profile, err := ctrl.registry.GetProfile(ctx, st.Profile)
	if err != nil {
		return err
	}
	source, err := ctrl.openSource(ctx, profile)
	if err != nil {
		return eris.Wrapf(err, "open source for profile %s", profile.Name)
	}

	id := store.SyncIdentity{Profile: st.Profile, ProjectID: st.ProjectID}

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if _, ok := ctrl.syncs[id]; ok {
		return eris.Wrapf(domain.ErrAlreadyRunning, "sync %s/%s", st.Profile, st.ProjectID)
	}

	// Runners outlive the request that started them.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runner := NewRunner(st, ctrl.db, ctrl.syncStore, source, ctrl.writer, ctrl.config)
	ctrl.syncs[id] = syncDescriptor{
		cancelFunc: cancel,
		sync:       st,
		runner:     runner,
	}

	go runner.Run(runCtx)
	return nil
}

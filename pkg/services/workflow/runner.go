package workflow

import (
	"context"
	"database/sql"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
	"github.com/de-tools/project-atlas/pkg/services/dashboard"
	"github.com/de-tools/project-atlas/pkg/services/normalize"
	"github.com/de-tools/project-atlas/pkg/store/duckdb"
	"github.com/de-tools/project-atlas/pkg/store/duckdb/workflow"
	"github.com/rs/zerolog"
)

// Runner pulls one project from one source into the embedded store until its context ends.
type Runner struct {
	sync      *store.SyncState
	db        *sql.DB
	syncStore workflow.Store
	source    dashboard.RawSource
	writer    dashboard.Writer
	done      chan struct{}
	progress  chan RunnerProgress
	lastPull  *time.Time
	config    RunnerConfig
	now       func() time.Time
}

type RunnerConfig struct {
	// Interval between successful pulls.
	Interval time.Duration `mapstructure:"interval"`
	// Sleep after a failed pull.
	Sleep time.Duration `mapstructure:"sleep"`
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Interval: time.Minute,
		Sleep:    10 * time.Second,
	}
}

type RunnerProgress struct {
	SyncedRecords int64
	LastSyncedAt  time.Time
	Err           error
}

func NewRunner(
	st *store.SyncState,
	db *sql.DB,
	syncStore workflow.Store,
	source dashboard.RawSource,
	writer dashboard.Writer,
	config RunnerConfig,
) *Runner {
	return &Runner{
		sync:      st,
		db:        db,
		syncStore: syncStore,
		source:    source,
		writer:    writer,
		done:      make(chan struct{}),
		progress:  make(chan RunnerProgress, 100),
		lastPull:  st.LastSyncedAt,
		config:    config,
		now:       time.Now,
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress reports each pull. Reports are dropped when nobody reads them.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().
		Str("sync", r.sync.ID).
		Str("profile", r.sync.Profile).
		Str("project", r.sync.ProjectID).
		Logger()
	ctx = logger.WithContext(ctx)

	defer close(r.done)
	defer close(r.progress)

	failing := false
	for {
		wait := r.config.Interval

		count, err := r.pull(ctx)
		switch {
		case ctx.Err() != nil:
			logger.Info().Msg("sync stopped")
			return
		case err != nil:
			logger.Error().Err(err).Msg("failed to sync records")
			msg := err.Error()
			if uErr := r.syncStore.UpdateSyncStatus(ctx, r.sync.ID, string(domain.SyncStatusRunning), &msg); uErr != nil {
				logger.Error().Err(uErr).Msg("failed to record sync error")
			}
			failing = true
			wait = r.config.Sleep
		default:
			if failing {
				if uErr := r.syncStore.UpdateSyncStatus(ctx, r.sync.ID, string(domain.SyncStatusRunning), nil); uErr != nil {
					logger.Error().Err(uErr).Msg("failed to clear sync error")
				}
				failing = false
			}
			logger.Debug().Int64("records", count).Msg("records synced")
		}

		select {
		case r.progress <- RunnerProgress{SyncedRecords: count, LastSyncedAt: r.now(), Err: err}:
		default:
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info().Msg("sync stopped")
			return
		case <-timer.C:
		}
	}
}

// pull fetches every record kind and stores them with the sync progress in one transaction.
// Records changed by commands since the previous pull are kept when the writer is a Refresher.
func (r *Runner) pull(ctx context.Context) (int64, error) {
	var recs []domain.Record
	for _, kind := range domain.RecordKinds {
		raws, err := r.source.FetchRaw(ctx, r.sync.ProjectID, kind)
		if err != nil {
			return 0, err
		}
		recs = append(recs, dashboard.ForProject(normalize.NormalizeAll(ctx, kind, raws), r.sync.ProjectID)...)
	}

	count := int64(len(recs))
	var syncedAt time.Time
	err := duckdb.InTransaction(ctx, r.db, func(ctx context.Context) error {
		if err := r.save(ctx, recs); err != nil {
			return err
		}
		// Taken after the save so the rows written here are not newer than the pull.
		syncedAt = r.now()
		return r.syncStore.ProgressSync(ctx, r.sync.ID, syncedAt, count)
	})
	if err != nil {
		return 0, err
	}
	r.lastPull = &syncedAt
	return count, nil
}

func (r *Runner) save(ctx context.Context, recs []domain.Record) error {
	if refresher, ok := r.writer.(dashboard.Refresher); ok && r.lastPull != nil {
		return refresher.RefreshRecords(ctx, recs, *r.lastPull)
	}
	return r.writer.SaveRecords(ctx, recs)
}

package workflow

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
	"github.com/de-tools/project-atlas/pkg/store/duckdb"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

type Store interface {
	ListSyncs(ctx context.Context, statuses []string) ([]*store.SyncState, error)
	CreateSync(ctx context.Context, identity store.SyncIdentity) (*store.SyncState, error)
	UpdateSyncStatus(ctx context.Context, syncID string, status string, syncErr *string) error
	ProgressSync(ctx context.Context, syncID string, syncedAt time.Time, recordCount int64) error
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, eris.New("database connection is nil")
	}
	return &defaultStore{
		db: db,
	}, nil
}

func (s *defaultStore) ListSyncs(ctx context.Context, statuses []string) ([]*store.SyncState, error) {
	query := `SELECT id, profile, project_id, status, created_at, last_synced_at, record_count, error FROM sync_state`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, st := range statuses {
			placeholders = append(placeholders, "?")
			args = append(args, st)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY created_at, id`

	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "query syncs")
	}
	defer rows.Close()

	res := make([]*store.SyncState, 0)
	for rows.Next() {
		var (
			st       store.SyncState
			lastSync sql.NullTime
			syncErr  sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.Profile, &st.ProjectID, &st.Status, &st.CreatedAt, &lastSync, &st.RecordCount, &syncErr); err != nil {
			return nil, eris.Wrap(err, "scan sync")
		}
		if lastSync.Valid {
			t := lastSync.Time
			st.LastSyncedAt = &t
		}
		if syncErr.Valid {
			e := syncErr.String
			st.Error = &e
		}
		res = append(res, &st)
	}
	return res, eris.Wrap(rows.Err(), "iterate syncs")
}

func (s *defaultStore) CreateSync(ctx context.Context, identity store.SyncIdentity) (*store.SyncState, error) {
	st := &store.SyncState{
		ID:        uuid.NewString(),
		Profile:   identity.Profile,
		ProjectID: identity.ProjectID,
		Status:    string(domain.SyncStatusRunning),
		CreatedAt: time.Now().UTC(),
	}

	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT INTO sync_state (id, profile, project_id, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		st.ID, st.Profile, st.ProjectID, st.Status, st.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "create sync for %s/%s", identity.Profile, identity.ProjectID)
	}
	return st, nil
}

func (s *defaultStore) UpdateSyncStatus(ctx context.Context, syncID string, status string, syncErr *string) error {
	var errValue any
	if syncErr != nil {
		errValue = *syncErr
	}
	return s.update(ctx, syncID, `UPDATE sync_state SET status = ?, error = ? WHERE id = ?`, status, errValue, syncID)
}

func (s *defaultStore) ProgressSync(ctx context.Context, syncID string, syncedAt time.Time, recordCount int64) error {
	return s.update(ctx, syncID,
		`UPDATE sync_state SET last_synced_at = ?, record_count = ? WHERE id = ?`,
		syncedAt.UTC(), recordCount, syncID,
	)
}

func (s *defaultStore) update(ctx context.Context, syncID, query string, args ...any) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return eris.Wrapf(err, "update sync %s", syncID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return eris.Wrapf(domain.ErrNotFound, "sync %s", syncID)
	}
	return nil
}

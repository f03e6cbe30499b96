package records

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
	"github.com/de-tools/project-atlas/pkg/store/duckdb"
	"github.com/rotisserie/eris"
)

// Store persists canonical records. Writes join the transaction bound to ctx, if any.
type Store interface {
	Upsert(ctx context.Context, rows []store.RecordRow) error
	Refresh(ctx context.Context, rows []store.RecordRow, since time.Time) (int, error)
	List(ctx context.Context, projectID, kind string) ([]store.RecordRow, error)
	Get(ctx context.Context, kind, id string) (*store.RecordRow, error)
	UpdateProject(ctx context.Context, kind, id, projectID, status string) error
	UpdateStatus(ctx context.Context, kind, id, status string) error
}

type recordStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, eris.New("database connection is nil")
	}
	return &recordStore{db: db, now: time.Now}, nil
}

const selectColumns = `id, kind, project_id, name, status, budget, contract_value, actual, payload, updated_at`

func (s *recordStore) Upsert(ctx context.Context, rows []store.RecordRow) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := duckdb.Conn(ctx, s.db).PrepareContext(ctx, `
		INSERT OR REPLACE INTO records (
			id, kind, project_id, name, status, budget, contract_value, actual, payload, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "prepare upsert")
	}
	defer stmt.Close()

	now := s.now().UTC()
	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.ID,
			r.Kind,
			r.ProjectID,
			r.Name,
			r.Status,
			r.Budget,
			r.ContractValue,
			r.Actual,
			string(r.Payload),
			now,
		)
		if err != nil {
			return eris.Wrapf(err, "upsert record %s/%s", r.Kind, r.ID)
		}
	}
	return nil
}

// Refresh upserts rows except those stored rows changed after since, and returns how many it skipped.
func (s *recordStore) Refresh(ctx context.Context, rows []store.RecordRow, since time.Time) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stmt, err := duckdb.Conn(ctx, s.db).PrepareContext(ctx,
		`SELECT updated_at FROM records WHERE kind = ? AND id = ?`)
	if err != nil {
		return 0, eris.Wrap(err, "prepare refresh")
	}
	defer stmt.Close()

	fresh := make([]store.RecordRow, 0, len(rows))
	for _, r := range rows {
		var updatedAt time.Time
		err := stmt.QueryRowContext(ctx, r.Kind, r.ID).Scan(&updatedAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return 0, eris.Wrapf(err, "query record %s/%s", r.Kind, r.ID)
		case updatedAt.After(since):
			continue
		}
		fresh = append(fresh, r)
	}

	return len(rows) - len(fresh), s.Upsert(ctx, fresh)
}

func (s *recordStore) List(ctx context.Context, projectID, kind string) ([]store.RecordRow, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+selectColumns+` FROM records WHERE project_id = ? AND kind = ? ORDER BY id`,
		projectID, kind,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "query %s records of project %s", kind, projectID)
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *recordStore) Get(ctx context.Context, kind, id string) (*store.RecordRow, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+selectColumns+` FROM records WHERE kind = ? AND id = ?`,
		kind, id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "query record %s/%s", kind, id)
	}
	defer rows.Close()

	res, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, eris.Wrapf(domain.ErrNotFound, "record %s/%s", kind, id)
	}
	return &res[0], nil
}

func (s *recordStore) UpdateProject(ctx context.Context, kind, id, projectID, status string) error {
	return s.update(ctx, kind, id,
		`UPDATE records SET project_id = ?, status = ?, updated_at = ? WHERE kind = ? AND id = ?`,
		projectID, status, s.now().UTC(), kind, id,
	)
}

func (s *recordStore) UpdateStatus(ctx context.Context, kind, id, status string) error {
	return s.update(ctx, kind, id,
		`UPDATE records SET status = ?, updated_at = ? WHERE kind = ? AND id = ?`,
		status, s.now().UTC(), kind, id,
	)
}

func (s *recordStore) update(ctx context.Context, kind, id, query string, args ...any) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return eris.Wrapf(err, "update record %s/%s", kind, id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return eris.Wrapf(domain.ErrNotFound, "record %s/%s", kind, id)
	}
	return nil
}

func scanRows(rows *sql.Rows) ([]store.RecordRow, error) {
	res := make([]store.RecordRow, 0)
	for rows.Next() {
		var (
			r       store.RecordRow
			name    sql.NullString
			payload sql.NullString
		)
		err := rows.Scan(
			&r.ID,
			&r.Kind,
			&r.ProjectID,
			&name,
			&r.Status,
			&r.Budget,
			&r.ContractValue,
			&r.Actual,
			&payload,
			&r.UpdatedAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "scan record")
		}
		r.Name = name.String
		if p := strings.TrimSpace(payload.String); p != "" {
			r.Payload = []byte(p)
		}
		res = append(res, r)
	}
	return res, eris.Wrap(rows.Err(), "iterate records")
}

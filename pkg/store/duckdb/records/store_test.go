package records

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
	"github.com/de-tools/project-atlas/pkg/store/duckdb"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func row(id, kind, project, status string) store.RecordRow {
	return store.RecordRow{
		ID:        id,
		Kind:      kind,
		ProjectID: project,
		Name:      "name-" + id,
		Status:    status,
		Budget:    100,
		Actual:    90,
		Payload:   []byte(`{"rating":4}`),
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestStore_UpsertAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	err := f.store.Upsert(ctx, []store.RecordRow{
		row("BO-2", "buyout", "P1", "pending"),
		row("BO-1", "buyout", "P1", "awarded"),
		row("BO-3", "buyout", "P2", "pending"),
		row("E-1", "employee", "P1", "assigned"),
	})
	require.NoError(t, err)

	t.Run("filters by project and kind", func(t *testing.T) {
		got, err := f.store.List(ctx, "P1", "buyout")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "BO-1", got[0].ID)
		assert.Equal(t, "BO-2", got[1].ID)
		assert.Equal(t, "name-BO-1", got[0].Name)
		assert.JSONEq(t, `{"rating":4}`, string(got[0].Payload))
		assert.False(t, got[0].UpdatedAt.IsZero())
	})

	t.Run("upsert replaces", func(t *testing.T) {
		updated := row("BO-1", "buyout", "P1", "executed")
		updated.Actual = 120
		require.NoError(t, f.store.Upsert(ctx, []store.RecordRow{updated}))

		got, err := f.store.Get(ctx, "buyout", "BO-1")
		require.NoError(t, err)
		assert.Equal(t, "executed", got.Status)
		assert.Equal(t, 120.0, got.Actual)
	})

	t.Run("unknown project", func(t *testing.T) {
		got, err := f.store.List(ctx, "P9", "buyout")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_Updates(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Upsert(ctx, []store.RecordRow{row("E-1", "employee", "P1", "available")}))

	require.NoError(t, f.store.UpdateProject(ctx, "employee", "E-1", "P2", "assigned"))
	got, err := f.store.Get(ctx, "employee", "E-1")
	require.NoError(t, err)
	assert.Equal(t, "P2", got.ProjectID)
	assert.Equal(t, "assigned", got.Status)

	require.NoError(t, f.store.UpdateStatus(ctx, "employee", "E-1", "on_leave"))
	got, err = f.store.Get(ctx, "employee", "E-1")
	require.NoError(t, err)
	assert.Equal(t, "on_leave", got.Status)

	err = f.store.UpdateStatus(ctx, "employee", "E-9", "assigned")
	assert.True(t, eris.Is(err, domain.ErrNotFound), "got %v", err)

	_, err = f.store.Get(ctx, "buyout", "E-1")
	assert.True(t, eris.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestStore_UpsertInTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	err := duckdb.InTransaction(ctx, f.db, func(ctx context.Context) error {
		if err := f.store.Upsert(ctx, []store.RecordRow{row("BO-1", "buyout", "P1", "pending")}); err != nil {
			return err
		}
		return eris.New("abort")
	})
	require.Error(t, err)

	got, err := f.store.List(ctx, "P1", "buyout")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_RefreshKeepsNewerRows(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	rs := f.store.(*recordStore)

	pulled := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rs.now = func() time.Time { return pulled.Add(-time.Minute) }
	require.NoError(t, f.store.Upsert(ctx, []store.RecordRow{
		row("E-1", "employee", "P1", "available"),
		row("BO-1", "buyout", "P1", "pending"),
	}))

	rs.now = func() time.Time { return pulled.Add(time.Minute) }
	require.NoError(t, f.store.UpdateProject(ctx, "employee", "E-1", "P2", "assigned"))

	changed := row("BO-1", "buyout", "P1", "bidding")
	skipped, err := f.store.Refresh(ctx, []store.RecordRow{
		row("E-1", "employee", "P1", "available"),
		changed,
		row("BO-2", "buyout", "P1", "pending"),
	}, pulled)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)

	employee, err := f.store.Get(ctx, "employee", "E-1")
	require.NoError(t, err)
	assert.Equal(t, "P2", employee.ProjectID)
	assert.Equal(t, "assigned", employee.Status)

	buyouts, err := f.store.List(ctx, "P1", "buyout")
	require.NoError(t, err)
	require.Len(t, buyouts, 2)
	assert.Equal(t, "bidding", buyouts[0].Status)
}

func TestStore_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM records WHERE project_id").
		WithArgs("P1", "buyout").
		WillReturnError(sql.ErrConnDone)

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.List(context.Background(), "P1", "buyout")
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpsertExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPrepare("INSERT OR REPLACE INTO records").
		ExpectExec().
		WillReturnError(sql.ErrTxDone)

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Upsert(context.Background(), []store.RecordRow{row("BO-1", "buyout", "P1", "pending")})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrTxDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

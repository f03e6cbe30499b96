package duckdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{DbPath: dbPath})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO sync_state (id, profile, project_id, status) VALUES (?, ?, ?, ?)`,
		"sync-001", "local", "P1", "running",
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sync_state WHERE id = ?", "sync-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInTransaction(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	insert := func(id string) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			require.NotNil(t, GetTransaction(ctx))
			_, err := Conn(ctx, db).ExecContext(ctx,
				`INSERT INTO records (id, kind, project_id, status) VALUES (?, 'buyout', 'P1', 'pending')`, id)
			return err
		}
	}

	t.Run("commit", func(t *testing.T) {
		require.NoError(t, InTransaction(ctx, db, insert("BO-1")))
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := InTransaction(ctx, db, func(ctx context.Context) error {
			if err := insert("BO-2")(ctx); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	var ids []string
	rows, err := db.Query(`SELECT id FROM records ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"BO-1"}, ids)
}

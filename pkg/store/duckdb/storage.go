package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
	"github.com/rotisserie/eris"
)

const SyncStateSchema = `
	CREATE TABLE IF NOT EXISTS sync_state (
		id VARCHAR PRIMARY KEY,
		profile VARCHAR NOT NULL,
		project_id VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_synced_at TIMESTAMP NULL,
		record_count BIGINT NOT NULL DEFAULT 0,
		error VARCHAR NULL
	);
`

// Records are keyed by kind and id so a reassignment can move an employee between projects.
const RecordsTableSchema = `
	CREATE TABLE IF NOT EXISTS records (
		id VARCHAR NOT NULL,
		kind VARCHAR NOT NULL,
		project_id VARCHAR NOT NULL,
		name VARCHAR,
		status VARCHAR NOT NULL,
		budget DOUBLE NOT NULL DEFAULT 0,
		contract_value DOUBLE NOT NULL DEFAULT 0,
		actual DOUBLE NOT NULL DEFAULT 0,
		payload VARCHAR,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (kind, id)
	);
`

var bootQueries = []string{
	SyncStateSchema,
	RecordsTableSchema,
}

type Settings struct {
	DbPath  string `mapstructure:"path"`
	Threads int    `mapstructure:"threads"`
}

func DefaultSettings() Settings {
	return Settings{
		DbPath:  "atlas.db",
		Threads: 4,
	}
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = DefaultSettings().Threads
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return eris.Wrap(err, "failed to run boot query")
			}
		}
		return nil
	})

	if err != nil {
		return nil, eris.Wrapf(err, "failed to open duckdb at %s", settings.DbPath)
	}

	return sql.OpenDB(c), nil
}

// InTransaction runs fn with a transaction bound to ctx, committing when fn succeeds.
func InTransaction(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "failed to begin transaction")
	}

	if err := fn(WithTransaction(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return eris.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}

	return eris.Wrap(tx.Commit(), "failed to commit transaction")
}

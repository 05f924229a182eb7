package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
)

type snapshotStore struct {
	db *sqlx.DB
}

// NewSnapshotStore keeps snapshots as JSONB rows of the snapshot table.
func NewSnapshotStore(db *sqlx.DB) core.SnapshotStore {
	return &snapshotStore{db: db}
}

func (store *snapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := store.db.GetContext(ctx, &data, `SELECT data FROM snapshot WHERE key = $1`, key); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, errors.Wrapf(err, "selecting snapshot %q", key)
	}
	return data, nil
}

func (store *snapshotStore) Set(ctx context.Context, key string, data []byte) error {
	q := `
	INSERT INTO snapshot (key, data, updated_at) VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := store.db.ExecContext(ctx, q, key, string(data)); err != nil {
		return errors.Wrapf(err, "upserting snapshot %q", key)
	}
	return nil
}

func (store *snapshotStore) Delete(ctx context.Context, key string) error {
	if _, err := store.db.ExecContext(ctx, `DELETE FROM snapshot WHERE key = $1`, key); err != nil {
		return errors.Wrapf(err, "deleting snapshot %q", key)
	}
	return nil
}

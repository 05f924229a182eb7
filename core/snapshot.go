package core

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Snapshot keys
const (
	StudentsKey      = "studentsDB"
	RelationshipsKey = "relationshipsDB"
)

// SnapshotKeys lists every key the application persists.
var SnapshotKeys = []string{StudentsKey, RelationshipsKey}

// SnapshotStore persists whole collections as opaque JSON documents.
// A Set replaces whatever was stored under the key before.
type SnapshotStore interface {
	// Get returns ErrSnapshotNotFound when key holds nothing.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// ReadSnapshot decodes the snapshot stored under key into v.
// found is false (and v untouched) when there is no snapshot yet.
func ReadSnapshot(ctx context.Context, store SnapshotStore, key string, v interface{}) (found bool, err error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) == ErrSnapshotNotFound {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading snapshot %q", key)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "decoding snapshot %q", key)
	}
	return true, nil
}

// WriteSnapshot encodes v and stores it under key.
func WriteSnapshot(ctx context.Context, store SnapshotStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding snapshot %q", key)
	}
	if err = store.Set(ctx, key, data); err != nil {
		return errors.Wrapf(err, "writing snapshot %q", key)
	}
	return nil
}

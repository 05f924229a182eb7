package inmemdb

import (
	"context"
	"sync"

	"github.com/trezcool/classbook/core"
)

type snapshotStore struct {
	table map[string][]byte
	mutex sync.RWMutex
}

// NewSnapshotStore returns a process-local store; snapshots vanish with the process.
func NewSnapshotStore() core.SnapshotStore {
	return &snapshotStore{table: make(map[string][]byte)}
}

func (store *snapshotStore) Get(_ context.Context, key string) ([]byte, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	if data, ok := store.table[key]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, core.ErrSnapshotNotFound
}

func (store *snapshotStore) Set(_ context.Context, key string, data []byte) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.table[key] = append([]byte(nil), data...)
	return nil
}

func (store *snapshotStore) Delete(_ context.Context, key string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	delete(store.table, key)
	return nil
}

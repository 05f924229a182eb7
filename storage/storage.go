// Package storage opens the snapshot store selected by the configuration.
package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/storage/database"
	"github.com/trezcool/classbook/storage/database/inmem"
	"github.com/trezcool/classbook/storage/file"
	"github.com/trezcool/classbook/storage/redis"
)

// Open returns the configured store and a func releasing its connections.
func Open(ctx context.Context, conf *core.Config) (core.SnapshotStore, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Driver {
	case core.StorageMemory:
		return inmemdb.NewSnapshotStore(), noop, nil

	case core.StorageFile, "":
		store, err := filestore.NewSnapshotStore(conf.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case core.StorageRedis:
		client, err := redisstore.Open(ctx, conf)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSnapshotStore(client, conf.Redis.Prefix), client.Close, nil

	case core.StoragePostgres:
		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, nil, err
		}
		return database.NewSnapshotStore(db), db.Close, nil

	default:
		return nil, nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}

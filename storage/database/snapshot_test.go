package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classbook/core"
)

func TestDSN(t *testing.T) {
	conf := &core.Config{}
	conf.Database.Host = "db"
	conf.Database.Port = "5432"
	conf.Database.User = "app"
	conf.Database.Password = "s3cr3t"
	conf.Database.DisableTLS = true

	assert.Equal(t, "postgres://app:s3cr3t@db:5432/classbook?sslmode=disable&timezone=utc", dsn("classbook", conf))

	conf.Database.DisableTLS = false
	assert.Equal(t, "postgres://app:s3cr3t@db:5432/classbook?sslmode=require&timezone=utc", dsn("classbook", conf))
}

func TestOpen_unsupportedEngine(t *testing.T) {
	conf := &core.Config{}
	conf.Database.Engine = "mysql"
	_, err := Open(context.Background(), conf)
	assert.EqualError(t, err, `opening database: unsupported database engine "mysql"`)
}

// needs a live server: TEST_DATABASE_HOST=localhost go test ./storage/database
func TestSnapshotStore(t *testing.T) {
	host := os.Getenv("TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}

	for _, engine := range []string{"postgres", "pgx"} {
		t.Run(engine, func(t *testing.T) {
			ctx := context.Background()
			conf := &core.Config{}
			conf.Database.Engine = engine
			conf.Database.Host = host
			conf.Database.Port = "5432"
			conf.Database.Name = "classbook_test"
			conf.Database.User = os.Getenv("TEST_DATABASE_USER")
			conf.Database.Password = os.Getenv("TEST_DATABASE_PASSWORD")
			conf.Database.DisableTLS = true

			db, err := Open(ctx, conf)
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			store := NewSnapshotStore(db)
			require.NoError(t, store.Delete(ctx, core.StudentsKey))

			_, err = store.Get(ctx, core.StudentsKey)
			assert.Equal(t, core.ErrSnapshotNotFound, err)

			require.NoError(t, store.Set(ctx, core.StudentsKey, []byte(`[{"id":1}]`)))
			require.NoError(t, store.Set(ctx, core.StudentsKey, []byte(`[{"id":2}]`)))
			got, err := store.Get(ctx, core.StudentsKey)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":2}]`, string(got))

			require.NoError(t, store.Delete(ctx, core.StudentsKey))
		})
	}
}

package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
)

const snapshotTableDDL = `
CREATE TABLE IF NOT EXISTS snapshot (
	key        TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// dsn builds a postgres URL understood by both lib/pq and pgx.
func dsn(dbName string, conf *core.Config) string {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.DatabaseAddress(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func open(dbName string, conf *core.Config) (*sqlx.DB, error) {
	switch conf.Database.Engine {
	case "postgres", "pgx":
	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
	return sqlx.Open(conf.Database.Engine, dsn(dbName, conf))
}

// Open connects to the application database, creating it and its table when missing.
func Open(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if err := createIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := open(conf.Database.Name, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 10
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func createIfNotExist(ctx context.Context, conf *core.Config) error {
	// connect to the maintenance DB
	db, err := open("postgres", conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	if err = ping(ctx, db); err != nil {
		return errors.Wrap(err, "pinging database")
	}

	var exists bool
	if err = db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", conf.Database.Name); err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if !exists {
		q := fmt.Sprintf("CREATE DATABASE %q", conf.Database.Name)
		if _, err = db.ExecContext(ctx, q); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// Migrate creates the snapshot table.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, snapshotTableDDL); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

package redisstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/classbook/core"
)

type store struct {
	client *redis.Client
	prefix string
}

// NewSnapshotStore stores each snapshot as a plain string value under prefix+key.
func NewSnapshotStore(client *redis.Client, prefix string) core.SnapshotStore {
	return &store{client: client, prefix: prefix}
}

// Open connects to addr and pings the server.
func Open(ctx context.Context, conf *core.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "pinging redis at %s", conf.Redis.Addr)
	}
	return client, nil
}

func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, errors.Wrapf(err, "redis GET %s", s.prefix+key)
	}
	return data, nil
}

func (s *store) Set(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis SET %s", s.prefix+key)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Wrapf(err, "redis DEL %s", s.prefix+key)
	}
	return nil
}

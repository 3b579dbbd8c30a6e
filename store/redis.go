package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a Store backed by Redis. All keys are namespaced
// under the given prefix so several sessions can share one instance.
func NewRedisStore(opts *redis.Options, prefix string) (Store, error) {
	if prefix == "" {
		return nil, errors.New("redis store prefix must not be empty")
	}
	return &redisStore{rdb: redis.NewClient(opts), prefix: prefix}, nil
}

func (s *redisStore) redisKey(key string) string {
	return s.prefix + ":" + key
}

func (s *redisStore) List(ctx context.Context) ([]string, error) {
	var keys []string

	iter := s.rdb.Scan(ctx, 0, s.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix+":"))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return keys, nil
}

func (s *redisStore) Load(ctx context.Context, keys ...string) ([]Entry, error) {
	entries := make([]Entry, 0, len(keys))

	for _, key := range keys {
		data, err := s.rdb.Get(ctx, s.redisKey(key)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, key, err)
		}
		entries = append(entries, Entry{Key: key, Value: data})
	}

	return entries, nil
}

func (s *redisStore) Save(ctx context.Context, entries ...Entry) error {
	for _, e := range entries {
		if err := s.rdb.Set(ctx, s.redisKey(e.Key), e.Value, 0).Err(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSaveFailed, e.Key, err)
		}
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := s.rdb.Del(ctx, s.redisKey(key)).Err(); err != nil {
			return fmt.Errorf("delete failed: %s: %w", key, err)
		}
	}
	return nil
}

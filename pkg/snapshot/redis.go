package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/jarkit/pkg/jar"
)

// RedisStore persists snapshots as CBOR values in Redis, keyed by the
// snapshot path under a configurable prefix. It is useful when a session's
// jar must survive the process without touching local disk.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ jar.SnapshotStore = (*RedisStore)(nil)

type RedisOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. The default is "jarkit:snapshot:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithTTL expires stored snapshots after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore creates a Redis-backed snapshot store around an existing
// client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNoClient
	}

	s := &RedisStore{
		client: client,
		prefix: "jarkit:snapshot:",
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Save stores snap under the key derived from path. With overwrite
// disabled an existing key fails with ErrAlreadyExists.
func (s *RedisStore) Save(ctx context.Context, path string, snap jar.Snapshot, overwrite bool) error {
	payload, err := encode(snap)
	if err != nil {
		return err
	}

	if overwrite {
		return s.client.Set(ctx, s.key(path), payload, s.ttl).Err()
	}

	ok, err := s.client.SetNX(ctx, s.key(path), payload, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	}

	return nil
}

// Load reads the snapshot stored under path. A missing key fails with
// ErrNotFound, undecodable data with ErrCorrupt.
func (s *RedisStore) Load(ctx context.Context, path string) (jar.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return jar.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return jar.Snapshot{}, err
	}

	return decode(data)
}

func (s *RedisStore) key(path string) string {
	return s.prefix + path
}

// RedisConfig holds connection settings for ConnectRedis.
type RedisConfig struct {
	ConnectionURL  string        `env:"JARKIT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"JARKIT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"JARKIT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"JARKIT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis establishes a Redis connection for a RedisStore, retrying up
// to cfg.RetryAttempts times with cfg.RetryInterval between attempts.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis connection string: %w", err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("redis not ready: %w", ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.New("redis did not become ready within the given time period")
}

package tokenstore

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ session.TokenRepo = (*RedisStore)(nil)

// RedisStore keeps the token under a single key. The key expires with the
// token when its exp claim can be read.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	owned  bool
	now    func() time.Time
}

// NewRedis connects to redis and verifies the connection.
func NewRedis(ctx context.Context, cfg Config) (*RedisStore, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping %s: %v", apperrors.ErrStoreUnavailable, cfg.Redis.Addr, err)
	}

	s := NewRedisWithClient(client, cfg)
	s.owned = true
	return s, nil
}

// NewRedisWithClient uses an existing client. Close leaves the client open.
func NewRedisWithClient(client *redis.Client, cfg Config) *RedisStore {
	prefix := "skillshare:"
	if cfg.Redis != nil && cfg.Redis.Prefix != "" {
		prefix = cfg.Redis.Prefix
	}
	return &RedisStore{
		client: client,
		key:    prefix + storageKey(cfg.Namespace),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

func (s *RedisStore) Get(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "RedisStore.Get")
	}
	return token, true, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	return errors.Wrap(s.client.Set(ctx, s.key, token, s.expiryFor(token)).Err(), "RedisStore.Set")
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return errors.Wrap(s.client.Del(ctx, s.key).Err(), "RedisStore.Delete")
}

func (s *RedisStore) Close(_ context.Context) error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

// expiryFor returns the key lifetime: time left on the token when it decodes
// with a future expiry, otherwise the configured TTL (0 keeps it forever).
func (s *RedisStore) expiryFor(token string) time.Duration {
	claims, err := session.Decode(token)
	if err != nil || !claims.Has(session.ClaimExpiry) {
		return s.ttl
	}
	left := claims.ExpiresAt.Sub(s.now())
	if left <= 0 {
		return s.ttl
	}
	return left
}

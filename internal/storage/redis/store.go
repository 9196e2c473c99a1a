package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/domain/repository"
)

const (
	keyPrefix    = "kakigori:credentials:"
	fieldStoreID = "store_id"
	fieldAPIKey  = "api_key"
)

// client is the subset of *goredis.Client used by Store.
type client interface {
	HGetAll(ctx context.Context, key string) *goredis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...any) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// Store keeps credentials in a redis hash per session. Entries expire ttl
// after the last write; a zero ttl keeps them forever.
type Store struct {
	client client
	ttl    time.Duration
	logger *slog.Logger
}

// Options configures the redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New connects to redis and verifies the connection with a ping.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	s := &Store{client: rdb, ttl: opts.TTL, logger: logger}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return s, nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the connection.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) Load(ctx context.Context, sessionID string) (model.StoreConfig, error) {
	fields, err := s.client.HGetAll(ctx, key(sessionID)).Result()
	if err != nil {
		return model.StoreConfig{}, fmt.Errorf("load credentials: %w", err)
	}
	return model.StoreConfig{
		StoreID: fields[fieldStoreID],
		APIKey:  fields[fieldAPIKey],
	}, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, cfg model.StoreConfig) error {
	k := key(sessionID)
	if err := s.client.HSet(ctx, k, fieldStoreID, cfg.StoreID, fieldAPIKey, cfg.APIKey).Err(); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, k, s.ttl).Err(); err != nil {
			s.logger.Warn("credential expiry not set", slog.String("session", sessionID), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

var _ repository.CredentialStore = (*Store)(nil)

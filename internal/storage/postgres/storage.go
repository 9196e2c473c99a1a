package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kakigori/storefront/internal/domain/model"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps operator credentials in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New connects to the database and creates the schema.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks the connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS store_credentials (
            session_id TEXT PRIMARY KEY,
            store_id TEXT NOT NULL,
            api_key TEXT NOT NULL DEFAULT '',
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_store_credentials_updated ON store_credentials(updated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Load returns the credentials of a session, or the zero value when absent.
func (s *Storage) Load(ctx context.Context, sessionID string) (model.StoreConfig, error) {
	const query = `SELECT store_id, api_key FROM store_credentials WHERE session_id=$1`
	var cfg model.StoreConfig
	err := s.pool.QueryRow(ctx, query, sessionID).Scan(&cfg.StoreID, &cfg.APIKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.StoreConfig{}, nil
		}
		return model.StoreConfig{}, err
	}
	return cfg, nil
}

// Save upserts the credentials of a session.
func (s *Storage) Save(ctx context.Context, sessionID string, cfg model.StoreConfig) error {
	const query = `INSERT INTO store_credentials (session_id, store_id, api_key, updated_at)
                   VALUES ($1, $2, $3, NOW())
                   ON CONFLICT (session_id) DO UPDATE
                   SET store_id = EXCLUDED.store_id, api_key = EXCLUDED.api_key, updated_at = NOW()`
	_, err := s.pool.Exec(ctx, query, sessionID, cfg.StoreID, cfg.APIKey)
	return err
}

// Clear deletes the credentials of a session.
func (s *Storage) Clear(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM store_credentials WHERE session_id=$1`
	_, err := s.pool.Exec(ctx, query, sessionID)
	return err
}

// Purge deletes credentials last written before cutoff.
func (s *Storage) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM store_credentials WHERE updated_at < $1`
	tag, err := s.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	if n := tag.RowsAffected(); n > 0 {
		s.logger.Info("purged stale credentials", slog.Int64("count", n))
	}
	return tag.RowsAffected(), nil
}

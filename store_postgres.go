package inkwell

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore keeps slots in Postgres. It is used instead of Store when a database URL
// is configured.
type PgStore struct {
	pool *pgxpool.Pool
}

var _ SlotStore = (*PgStore)(nil)

// NewPgStore connects to connStr and creates the slots table.
func NewPgStore(ctx context.Context, connStr string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PgStore{pool: pool}
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS slots (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init slots schema: %w", err)
	}
	return s, nil
}

// Close releases the pool.
func (s *PgStore) Close() error {
	s.pool.Close()
	return nil
}

// GetItem returns the slot value and whether the slot exists.
func (s *PgStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem upserts a slot value.
func (s *PgStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO slots (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = $2`,
		key, value)
	return err
}

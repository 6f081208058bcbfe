// Package pgstore backs the engine's record store with Postgres. Records
// stay in their binary codec form; the table is a plain key/value map so
// the schema never has to track the codec.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizpot/sdk"
)

type Store struct {
	db *pgxpool.Pool
}

var _ sdk.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	key   TEXT PRIMARY KEY,
	value BYTEA NOT NULL
)`

// Open connects to dsn and ensures the records table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: pool}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, "SELECT value FROM records WHERE key=$1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO records (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
		key, value)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM records WHERE key=$1", key)
	return err
}

func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	// starts_with avoids LIKE's wildcard escaping
	_, err := s.db.Exec(ctx, "DELETE FROM records WHERE starts_with(key, $1)", prefix)
	return err
}

func (s *Store) Close() {
	s.db.Close()
}

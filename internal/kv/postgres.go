package kv

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/sbilibin2017/pocket-notes/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the kv_entries table up to date.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// PostgresStore keeps entries as rows of the kv_entries table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a store over a connected database. Call Migrate first.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := s.db.GetContext(ctx, &value, query, key)

	logger.Log.Debugw("postgres kv",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{key},
		"size", len(value),
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
	`

	_, err := s.db.ExecContext(ctx, query, key, value)

	logger.Log.Debugw("postgres kv",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{key},
		"size", len(value),
		"error", err,
	)

	if err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key = $1`

	res, err := s.db.ExecContext(ctx, query, key)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("postgres kv",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{key},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return unavailable("remove", key, err)
	}
	return nil
}

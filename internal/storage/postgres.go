package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps each collection as a jsonb blob in a single table,
// so ledgers can swap the file backend for a database without changes.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (p *PostgresStore) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS collections (
			key        text PRIMARY KEY,
			data       jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`

	if _, err := p.db.Exec(query); err != nil {
		return fmt.Errorf("creating collections table: %w", err)
	}

	return nil
}

func (p *PostgresStore) Load(ctx context.Context, key string, v any) error {
	var data []byte

	query := `SELECT data FROM collections WHERE key = $1`
	if err := p.db.QueryRowContext(ctx, query, key).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}

		return fmt.Errorf("loading %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}

	return nil
}

func (p *PostgresStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	query := `
		INSERT INTO collections (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`

	if _, err := p.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	return nil
}

func (p *PostgresStore) Close() error { return p.db.Close() }

// Package postgres persiste el snapshot de cuidado en Postgres, para
// despliegues donde el "dispositivo" es un backend propio. Mismo payload
// que sqlite, cambia solo el dialecto.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"med-care-tracker/internal/adapters/storage/snapshot"
	"med-care-tracker/internal/domain/care"
)

const snapshotKey = "care_state"

// Open abre un pool a Postgres usando pgx (database/sql) y valida con ping.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS care_state (
			id         TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ensure schema: %w", err)
	}

	return db, nil
}

type CareRepo struct {
	db *sql.DB
}

func NewCareRepo(db *sql.DB) *CareRepo {
	return &CareRepo{db: db}
}

func (r *CareRepo) Load(ctx context.Context) (care.State, bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM care_state WHERE id = $1
	`, snapshotKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return care.State{}, false, nil
	}
	if err != nil {
		return care.State{}, false, fmt.Errorf("postgres: load snapshot: %w", err)
	}

	st, err := snapshot.Decode([]byte(payload))
	if err != nil {
		return care.State{}, false, err
	}
	return st, true, nil
}

func (r *CareRepo) Save(ctx context.Context, s care.State) error {
	raw, err := snapshot.Encode(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO care_state (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			payload    = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, snapshotKey, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("postgres: save snapshot: %w", err)
	}
	return nil
}

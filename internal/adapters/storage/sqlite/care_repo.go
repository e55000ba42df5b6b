// Package sqlite persiste el snapshot de cuidado en un archivo local,
// que es el equivalente del "local storage" del dispositivo: un solo
// registro con el blob JSON completo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"med-care-tracker/internal/adapters/storage/snapshot"
	"med-care-tracker/internal/domain/care"
)

// snapshotKey: hay un único usuario por proceso, así que hay un único snapshot.
const snapshotKey = "care_state"

// Open abre (o crea) el archivo sqlite y asegura el esquema.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: path required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// El driver modernc no soporta múltiples writers.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS care_state (
			id         TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ensure schema: %w", err)
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
		SELECT payload FROM care_state WHERE id = ?
	`, snapshotKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return care.State{}, false, nil
	}
	if err != nil {
		return care.State{}, false, fmt.Errorf("sqlite: load snapshot: %w", err)
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
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = excluded.updated_at
	`, snapshotKey, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite: save snapshot: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPersister mirrors the state into a single JSONB row so a restart on
// a fresh disk can recover it. The pool may be nil when no database is
// configured; Load then reports nothing and Save reports unavailability.
type PostgresPersister struct {
	pool *pgxpool.Pool
}

func NewPostgresPersister(pool *pgxpool.Pool) *PostgresPersister {
	return &PostgresPersister{pool: pool}
}

func (p *PostgresPersister) Name() string { return "postgres" }

const stateTableDDL = `
CREATE TABLE IF NOT EXISTS dashboard_state (
	id         INT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (p *PostgresPersister) EnsureSchema(ctx context.Context) error {
	if p.pool == nil {
		return errors.New("postgres not configured")
	}
	_, err := p.pool.Exec(ctx, stateTableDDL)
	return err
}

func (p *PostgresPersister) Save(ctx context.Context, st PersistedState) error {
	if p.pool == nil {
		return errors.New("postgres not configured")
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO dashboard_state (id, payload, updated_at)
		 VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		payload)
	return err
}

func (p *PostgresPersister) Load(ctx context.Context) (*PersistedState, error) {
	if p.pool == nil {
		return nil, nil
	}
	var payload []byte
	err := p.pool.QueryRow(ctx, `SELECT payload FROM dashboard_state WHERE id = 1`).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st PersistedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

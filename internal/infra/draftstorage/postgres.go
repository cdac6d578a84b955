package draftstorage

import (
	"context"
	"errors"

	"booking-checkout/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	createDraftTableSQL = `CREATE TABLE IF NOT EXISTS booking_drafts (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	getDraftSQL = `SELECT value FROM booking_drafts WHERE key = $1`

	upsertDraftSQL = `INSERT INTO booking_drafts (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	deleteDraftSQL = `DELETE FROM booking_drafts WHERE key = $1`
)

type Postgres struct {
	db DBTX
}

func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createDraftTableSQL); err != nil {
		return infra.WrapRepoErr("failed to create booking_drafts table", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := p.db.QueryRow(ctx, getDraftSQL, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("draft not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load draft", err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.Exec(ctx, upsertDraftSQL, key, value); err != nil {
		return infra.WrapRepoErr("failed to persist draft", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, deleteDraftSQL, key); err != nil {
		return infra.WrapRepoErr("failed to delete draft", err)
	}
	return nil
}

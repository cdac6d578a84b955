//go:build e2e

package dbtest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"booking-checkout/internal/domain/draft"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool, pgx.Tx and *pgx.Conn.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SeedDraft stores d under key the way the postgres draft backend does.
func SeedDraft(t *testing.T, db DBLike, key string, d *draft.Draft) {
	t.Helper()

	value, err := json.Marshal(d)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(),
		`INSERT INTO booking_drafts (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	require.NoError(t, err)
}

// ReadDraft returns the persisted draft for key, or false when the row is absent.
func ReadDraft(t *testing.T, db DBLike, key string) (*draft.Draft, bool) {
	t.Helper()

	var value []byte
	err := db.QueryRow(context.Background(), "SELECT value FROM booking_drafts WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false
	}
	require.NoError(t, err)

	var d draft.Draft
	require.NoError(t, json.Unmarshal(value, &d))
	return &d, true
}

// ResetDB empties the draft table. The application creates it on startup.
func ResetDB(db DBLike) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Exec(ctx, "TRUNCATE booking_drafts")
	return err
}

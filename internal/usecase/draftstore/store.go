package draftstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"booking-checkout/internal/domain/draft"
	"booking-checkout/internal/infra"
	"booking-checkout/internal/pkg/metrics"
)

// Storage is a key/value backend for serialized drafts. Get reports an absent key with
// infra.KindNotFound.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const DefaultKeyPrefix = "bookingDraft"

// Key builds the per-client slot name.
func Key(prefix, clientID string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + ":" + clientID
}

// Store is the single draft slot of one client. Storage failures never surface to the
// caller: they are logged, counted and treated as "no draft".
type Store struct {
	storage Storage
	key     string
	logger  *slog.Logger
	metrics *metrics.CheckoutMetrics
}

func New(storage Storage, key string, logger *slog.Logger, m *metrics.CheckoutMetrics) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		key:     key,
		logger:  logger.With(slog.String("draft_key", key)),
		metrics: m,
	}
}

// Load returns the persisted draft, or nil when there is none or it cannot be read.
func (s *Store) Load(ctx context.Context) *draft.Draft {
	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			s.fail(ctx, "load", "Failed to load booking draft", err)
		}
		return nil
	}

	var d draft.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		s.fail(ctx, "decode", "Ignoring unparseable booking draft", err)
		return nil
	}
	d.Normalize()
	return &d
}

// Save writes d as the client's draft. A nil draft removes it.
func (s *Store) Save(ctx context.Context, d *draft.Draft) {
	if d == nil {
		s.Clear(ctx)
		return
	}

	data, err := json.Marshal(d)
	if err != nil {
		s.fail(ctx, "encode", "Failed to encode booking draft", err)
		return
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.fail(ctx, "save", "Failed to save booking draft", err)
	}
}

func (s *Store) Clear(ctx context.Context) {
	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.fail(ctx, "clear", "Failed to clear booking draft", err)
	}
}

func (s *Store) fail(ctx context.Context, op, msg string, err error) {
	s.metrics.ObserveStorageFailure(op)
	s.logger.WarnContext(ctx, msg,
		slog.String("op", op),
		slog.String("kind", string(infra.KindOf(err))),
		slog.String("error", err.Error()),
	)
}

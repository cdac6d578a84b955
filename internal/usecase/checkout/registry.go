package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"booking-checkout/internal/pkg/metrics"
	"booking-checkout/internal/usecase/draftstore"
)

const DefaultIdleTTL = 30 * time.Minute

type registryEntry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Registry owns one Wizard per client so that each draft key has a single writer.
// Wizards idle for longer than IdleTTL are dropped; their drafts stay in storage and
// are rehydrated on the next access.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	retired sync.WaitGroup

	storage   draftstore.Storage
	backend   Backend
	keyPrefix string
	logger    *slog.Logger
	metrics   *metrics.CheckoutMetrics
	opts      Options
}

func NewRegistry(
	storage draftstore.Storage,
	backend Backend,
	keyPrefix string,
	logger *slog.Logger,
	m *metrics.CheckoutMetrics,
	opts Options,
) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries:   make(map[string]*registryEntry),
		storage:   storage,
		backend:   backend,
		keyPrefix: keyPrefix,
		logger:    logger,
		metrics:   m,
		opts:      opts.withDefaults(),
	}
}

// Get returns the client's wizard, mounting it until a catalog has been loaded.
func (r *Registry) Get(ctx context.Context, clientID string) (*Wizard, error) {
	w := r.lookup(clientID)
	if !w.Ready() {
		if err := w.Mount(ctx); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Mount returns the client's wizard after refreshing its catalog, so prices and
// provider lists follow the backend.
func (r *Registry) Mount(ctx context.Context, clientID string) (*Wizard, error) {
	w := r.lookup(clientID)
	if err := w.Mount(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *Registry) lookup(clientID string) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Clock.Now()
	r.evictIdleLocked(now)

	e, ok := r.entries[clientID]
	if !ok {
		key := draftstore.Key(r.keyPrefix, clientID)
		logger := r.logger.With(slog.String("client_id", clientID))
		store := draftstore.New(r.storage, key, logger, r.metrics)
		e = &registryEntry{wizard: NewWizard(store, r.backend, logger, r.metrics, r.opts)}
		r.entries[clientID] = e
	}
	e.lastSeen = now
	return e.wizard
}

func (r *Registry) evictIdleLocked(now time.Time) {
	for clientID, e := range r.entries {
		if now.Sub(e.lastSeen) < r.opts.IdleTTL || e.wizard.Submitting() {
			continue
		}
		r.retireLocked(clientID, e)
	}
}

// retireLocked keeps shutdown waiting for any follow-up call the wizard still runs.
func (r *Registry) retireLocked(clientID string, e *registryEntry) {
	delete(r.entries, clientID)
	r.retired.Add(1)
	go func() {
		defer r.retired.Done()
		e.wizard.WaitBackground()
	}()
}

// Forget drops the in-memory wizard; the persisted draft is untouched.
func (r *Registry) Forget(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[clientID]; ok {
		r.retireLocked(clientID, e)
	}
}

// Len is the number of wizards held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// WaitBackground waits for detached follow-up calls of every wizard, for shutdown.
func (r *Registry) WaitBackground() {
	r.mu.Lock()
	wizards := make([]*Wizard, 0, len(r.entries))
	for _, e := range r.entries {
		wizards = append(wizards, e.wizard)
	}
	r.mu.Unlock()

	for _, w := range wizards {
		w.WaitBackground()
	}
	r.retired.Wait()
}

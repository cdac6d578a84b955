package checkout

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"booking-checkout/internal/domain/booking"
	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/draft"
	"booking-checkout/internal/domain/pricing"
	"booking-checkout/internal/domain/promotion"
	"booking-checkout/internal/pkg/clock"
	"booking-checkout/internal/pkg/errs"
	"booking-checkout/internal/pkg/metrics"
	"booking-checkout/internal/pkg/patch"
	"booking-checkout/internal/usecase/draftstore"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const DefaultBackendTimeout = 15 * time.Second

type Options struct {
	// BackendTimeout bounds each marketplace call the wizard makes.
	BackendTimeout time.Duration
	// Location interprets scheduledDate/scheduledTime.
	Location *time.Location
	// NewIdempotencyKey defaults to a random UUID.
	NewIdempotencyKey func() string
	// IdleTTL is how long the registry keeps an unused wizard in memory.
	IdleTTL time.Duration
	Clock   clock.Clock
}

func (o Options) withDefaults() Options {
	if o.BackendTimeout <= 0 {
		o.BackendTimeout = DefaultBackendTimeout
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.NewIdempotencyKey == nil {
		o.NewIdempotencyKey = uuid.NewString
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = DefaultIdleTTL
	}
	if o.Clock == nil {
		o.Clock = clock.NewRealClock()
	}
	return o
}

// State is a point-in-time copy of the wizard; callers may keep and modify it freely.
type State struct {
	Step           draft.Step
	Draft          draft.Draft
	Quote          pricing.Quote
	PromoCode      string
	PromoError     string
	FieldErrors    draft.FieldErrors
	Submitting     bool
	ConfirmationID string
	Services       []catalog.Service
	Providers      []catalog.Provider
}

// Wizard drives one client's booking draft through service, schedule, location, custom,
// notes and review. Every draft mutation is written through to the store. The lock is
// never held across a marketplace call.
type Wizard struct {
	mu      sync.Mutex
	store   *draftstore.Store
	backend Backend
	logger  *slog.Logger
	metrics *metrics.CheckoutMetrics
	opts    Options

	mounted        bool
	catalog        *catalog.Catalog
	draft          *draft.Draft
	promo          *promotion.Application
	promoInput     string
	promoError     string
	fieldErrors    draft.FieldErrors
	submitting     bool
	confirmationID string

	background sync.WaitGroup
}

func NewWizard(store *draftstore.Store, backend Backend, logger *slog.Logger, m *metrics.CheckoutMetrics, opts Options) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Wizard{
		store:   store,
		backend: backend,
		logger:  logger,
		metrics: m,
		opts:    opts.withDefaults(),
		draft:   draft.New(),
	}
}

// Mount rehydrates the draft on first call and refreshes the catalog on every call.
// A catalog failure leaves the wizard usable for a later retry.
func (w *Wizard) Mount(ctx context.Context) error {
	w.mu.Lock()
	if !w.mounted {
		if d := w.store.Load(ctx); d != nil {
			w.draft = d
		}
		w.mounted = true
	}
	w.mu.Unlock()

	services, err := w.backend.ListServices(ctx)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "fetch services"), ErrCatalogUnavailable)
	}
	providers, err := w.backend.ListProviders(ctx)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "fetch providers"), ErrCatalogUnavailable)
	}

	w.mu.Lock()
	w.catalog = catalog.New(services, providers)
	w.mu.Unlock()
	return nil
}

// Submitting reports whether a create booking call is outstanding.
func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Ready reports whether Mount has completed with a catalog.
func (w *Wizard) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mounted && w.catalog != nil
}

func (w *Wizard) SelectService(ctx context.Context, serviceID string) error {
	return w.Apply(ctx, draft.Patch{ServiceID: &serviceID})
}

func (w *Wizard) SelectProvider(ctx context.Context, providerID string) error {
	return w.Apply(ctx, draft.Patch{ProviderID: &providerID})
}

func (w *Wizard) SetSchedule(ctx context.Context, date, clock string) error {
	return w.Apply(ctx, draft.Patch{ScheduledDate: &date, ScheduledTime: &clock})
}

func (w *Wizard) SetLocation(ctx context.Context, location string) error {
	return w.Apply(ctx, draft.Patch{Location: &location})
}

func (w *Wizard) SetCustomValue(ctx context.Context, fieldID, value string) error {
	return w.Apply(ctx, draft.Patch{CustomInputValues: map[string]string{fieldID: value}})
}

func (w *Wizard) SetNotes(ctx context.Context, notes string) error {
	return w.Apply(ctx, draft.Patch{Notes: &notes})
}

// Apply merges p into the draft and persists the result. Changing the service or the
// provider drops an applied promotion; changing the service also resets custom values.
func (w *Wizard) Apply(ctx context.Context, p draft.Patch) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritable(); err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}

	d := w.draft
	if id := patch.Coalesce(p.ServiceID, ""); id != "" && w.catalog != nil {
		if _, ok := w.catalog.Service(id); !ok {
			return errs.Wrapf(ErrServiceNotFound, "service %s", id)
		}
	}
	if id := patch.Coalesce(p.ProviderID, ""); id != "" && w.catalog != nil {
		if _, ok := w.catalog.Provider(id); !ok {
			return errs.Wrapf(ErrProviderNotFound, "provider %s", id)
		}
	}

	serviceID := patch.Coalesce(p.ServiceID, d.ServiceID)
	providerID := patch.Coalesce(p.ProviderID, d.ProviderID)
	if !w.offers(providerID, serviceID) {
		// an explicitly chosen provider must fit; a carried-over one is dropped
		if patch.Coalesce(p.ProviderID, "") != "" {
			return errs.Wrapf(ErrProviderNotFound, "provider %s does not offer service %s", providerID, serviceID)
		}
		providerID = ""
	}

	serviceChanged := serviceID != d.ServiceID
	providerChanged := providerID != d.ProviderID

	d.ServiceID = serviceID
	d.ProviderID = providerID
	d.ScheduledDate = patch.Coalesce(p.ScheduledDate, d.ScheduledDate)
	d.ScheduledTime = patch.Coalesce(p.ScheduledTime, d.ScheduledTime)
	d.Location = patch.Coalesce(p.Location, d.Location)
	d.Notes = patch.Coalesce(p.Notes, d.Notes)

	if serviceChanged {
		clear(d.CustomInputValues)
	}
	for id, v := range p.CustomInputValues {
		if strings.TrimSpace(v) == "" {
			delete(d.CustomInputValues, id)
			continue
		}
		d.CustomInputValues[id] = v
	}

	if serviceChanged || providerChanged {
		w.clearPromotion()
	}
	w.forgetFieldErrors(p)
	w.confirmationID = ""

	d.EnsureIdempotencyKey(w.opts.NewIdempotencyKey)
	w.persist(ctx)
	return nil
}

func (w *Wizard) offers(providerID, serviceID string) bool {
	if providerID == "" || serviceID == "" {
		return true
	}
	prov, ok := w.catalog.Provider(providerID)
	return !ok || prov.Offers(serviceID)
}

// Next validates the current step and advances by one. On failure it returns
// draft.FieldErrors and stays put.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritable(); err != nil {
		return err
	}

	step := w.draft.Step()
	if fe := draft.ValidateStep(w.draft, step, w.catalog.CustomFields(w.draft.ServiceID)); fe != nil {
		w.fieldErrors = fe
		w.metrics.ObserveStep("next", false)
		return fe
	}

	w.fieldErrors = nil
	w.draft.SetStep(step.Next())
	w.draft.EnsureIdempotencyKey(w.opts.NewIdempotencyKey)
	w.persist(ctx)
	w.metrics.ObserveStep("next", true)
	return nil
}

// Back moves to the previous step without validation.
func (w *Wizard) Back(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritable(); err != nil {
		return err
	}

	w.fieldErrors = nil
	w.draft.SetStep(w.draft.Step().Prev())
	w.draft.EnsureIdempotencyKey(w.opts.NewIdempotencyKey)
	w.persist(ctx)
	w.metrics.ObserveStep("back", true)
	return nil
}

// ApplyPromoCode validates code against the selected provider and service. The
// result is discarded with ErrPromotionStale if the selection changed meanwhile.
func (w *Wizard) ApplyPromoCode(ctx context.Context, code string) error {
	code = promotion.NormalizeCode(code)

	w.mu.Lock()
	if err := w.checkWritable(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.promoInput = code
	if code == "" {
		w.promoError = msgPromoCodeRequired
		w.mu.Unlock()
		return ErrPromoCodeRequired
	}
	serviceID, providerID := w.draft.ServiceID, w.draft.ProviderID
	if serviceID == "" || providerID == "" {
		w.promoError = msgPromoNeedsService
		w.mu.Unlock()
		return ErrServiceNotSelected
	}
	svc, ok := w.catalog.Service(serviceID)
	if !ok {
		w.mu.Unlock()
		return errs.Wrapf(ErrServiceNotFound, "service %s", serviceID)
	}
	serviceName := svc.Name
	w.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, w.opts.BackendTimeout)
	promo, err := w.backend.ValidatePromoCode(callCtx, code, providerID, serviceName)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.draft.ServiceID != serviceID || w.draft.ProviderID != providerID || w.promoInput != code {
		w.metrics.ObservePromoValidation("stale")
		return ErrPromotionStale
	}
	if err != nil {
		w.promo = nil
		w.promoError = promoRejectionMessage(err)
		w.metrics.ObservePromoValidation("rejected")
		w.logger.InfoContext(ctx, "Promo code rejected",
			slog.String("promo_code", code),
			slog.String("service_id", serviceID),
			slog.String("provider_id", providerID),
			slog.String("error", err.Error()),
		)
		return errs.Mark(errs.Wrap(err, "validate promo code"), ErrPromotionRejected)
	}

	w.promo = promo
	w.promoError = ""
	w.metrics.ObservePromoValidation("accepted")
	return nil
}

// RemovePromoCode drops the promotion, the typed code and any promo error.
func (w *Wizard) RemovePromoCode() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkWritable(); err != nil {
		return err
	}
	w.clearPromotion()
	return nil
}

// Quote prices the current selection.
func (w *Wizard) Quote() pricing.Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.quote()
}

func (w *Wizard) quote() pricing.Quote {
	svc, _ := w.catalog.Service(w.draft.ServiceID)
	return pricing.NewQuote(svc, w.promo)
}

// Submit creates the booking from the review step. Exactly one create call is made per
// invocation and concurrent invocations are rejected. The draft is cleared only after
// the backend confirms.
func (w *Wizard) Submit(ctx context.Context) (*booking.Booking, error) {
	w.mu.Lock()
	if err := w.checkWritable(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	req, promoID, err := w.prepareSubmission(ctx)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.submitting = true
	w.mu.Unlock()

	// The create call outlives a cancelled request: once sent it must settle.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.opts.BackendTimeout)
	start := time.Now()
	created, err := w.backend.CreateBooking(callCtx, req)
	elapsed := time.Since(start).Seconds()
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		w.metrics.ObserveSubmission("failure", elapsed)
		w.logger.ErrorContext(ctx, "Failed to create booking",
			slog.String("service_id", req.ServiceID),
			slog.String("provider_id", req.ProviderID),
			slog.String("idempotency_key", req.IdempotencyKey),
			slog.String("error", err.Error()),
		)
		return nil, errs.Mark(errs.Wrap(err, "create booking"), ErrBookingCreateFailed)
	}

	w.metrics.ObserveSubmission("success", elapsed)
	if promoID != "" {
		w.incrementPromotionUsage(ctx, promoID)
	}

	w.store.Clear(context.WithoutCancel(ctx))
	w.draft = draft.New()
	w.clearPromotion()
	w.fieldErrors = nil
	w.confirmationID = created.ID

	w.logger.InfoContext(ctx, "Booking created",
		slog.String("booking_id", created.ID),
		slog.String("idempotency_key", req.IdempotencyKey),
	)
	return created, nil
}

// prepareSubmission runs with w.mu held.
func (w *Wizard) prepareSubmission(ctx context.Context) (booking.Request, string, error) {
	d := w.draft
	if d.Step() != draft.StepReview {
		return booking.Request{}, "", ErrNotOnReview
	}

	if fe := draft.ValidateThrough(d, draft.StepReview, w.catalog.CustomFields(d.ServiceID)); fe != nil {
		w.fieldErrors = fe
		return booking.Request{}, "", fe
	}

	svc, ok := w.catalog.Service(d.ServiceID)
	if !ok {
		return booking.Request{}, "", errs.Wrapf(ErrServiceNotFound, "service %s", d.ServiceID)
	}

	scheduledAt, err := d.ScheduledAt(w.opts.Location)
	if err != nil {
		fe := draft.FieldErrors{draft.FieldScheduledTime: msgInvalidSchedule}
		w.fieldErrors = fe
		return booking.Request{}, "", fe
	}

	if d.IdempotencyKey == "" {
		d.EnsureIdempotencyKey(w.opts.NewIdempotencyKey)
		w.persist(ctx)
	}

	q := pricing.NewQuote(svc, w.promo)
	var promoID string
	if q.Promotion != nil {
		promoID = q.Promotion.ID
	}
	return booking.NewRequest(d, scheduledAt, q), promoID, nil
}

// incrementPromotionUsage is best effort: no retry, failures are only logged and counted.
func (w *Wizard) incrementPromotionUsage(ctx context.Context, promotionID string) {
	ctx = context.WithoutCancel(ctx)
	w.background.Add(1)
	go func() {
		defer w.background.Done()

		callCtx, cancel := context.WithTimeout(ctx, w.opts.BackendTimeout)
		defer cancel()

		if err := w.backend.IncrementPromotionUsage(callCtx, promotionID); err != nil {
			w.metrics.ObserveUsageIncrement(false)
			w.logger.WarnContext(ctx, "Failed to increment promotion usage",
				slog.String("promotion_id", promotionID),
				slog.String("error", err.Error()),
			)
			return
		}
		w.metrics.ObserveUsageIncrement(true)
	}()
}

// WaitBackground blocks until detached follow-up calls have finished.
func (w *Wizard) WaitBackground() {
	w.background.Wait()
}

// Discard clears the persisted draft and starts over on the first step.
func (w *Wizard) Discard(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return ErrSubmissionInFlight
	}
	w.store.Clear(ctx)
	w.draft = draft.New()
	w.clearPromotion()
	w.fieldErrors = nil
	w.confirmationID = ""
	return nil
}

func (w *Wizard) State() (*State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current := State{
		Step:           w.draft.Step(),
		Draft:          *w.draft,
		Quote:          w.quote(),
		PromoCode:      w.promoInput,
		PromoError:     w.promoError,
		FieldErrors:    w.fieldErrors,
		Submitting:     w.submitting,
		ConfirmationID: w.confirmationID,
		Services:       w.catalog.Services(),
		Providers:      w.catalog.Providers(),
	}

	var snapshot State
	if err := copier.CopyWithOption(&snapshot, &current, copier.Option{DeepCopy: true}); err != nil {
		return nil, errs.Wrap(err, "copy checkout state")
	}
	return &snapshot, nil
}

func (w *Wizard) checkWritable() error {
	if !w.mounted {
		return ErrNotMounted
	}
	if w.submitting {
		return ErrSubmissionInFlight
	}
	return nil
}

func (w *Wizard) clearPromotion() {
	w.promo = nil
	w.promoInput = ""
	w.promoError = ""
}

func (w *Wizard) forgetFieldErrors(p draft.Patch) {
	if len(w.fieldErrors) == 0 {
		return
	}
	touched := map[string]bool{
		draft.FieldServiceID:     p.ServiceID != nil,
		draft.FieldProviderID:    p.ProviderID != nil,
		draft.FieldScheduledDate: p.ScheduledDate != nil,
		draft.FieldScheduledTime: p.ScheduledTime != nil,
		draft.FieldLocation:      p.Location != nil,
	}
	for id := range p.CustomInputValues {
		touched[draft.CustomFieldKey(id)] = true
	}
	maps.DeleteFunc(w.fieldErrors, func(field string, _ string) bool {
		return touched[field]
	})
}

// persist runs with w.mu held. Saving is detached from ctx cancellation so the stored
// draft never lags the in-memory one.
func (w *Wizard) persist(ctx context.Context) {
	w.store.Save(context.WithoutCancel(ctx), w.draft)
}

func promoRejectionMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return msgPromoInvalid
}

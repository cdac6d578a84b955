package checkout

import (
	"context"
	"log/slog"

	"booking-checkout/internal/domain/booking"
	"booking-checkout/internal/domain/draft"
)

//go:generate mockgen -source=usecase.go -destination=../../../tests/mock/checkout/mock_usecase.go -package=checkoutmock

// CheckoutUseCase is the per-client checkout surface the HTTP layer calls. When an
// operation is rejected the returned State, if non-nil, reflects the rejection (field
// errors, promo error).
type CheckoutUseCase interface {
	State(ctx context.Context, clientID string) (*State, error)
	Patch(ctx context.Context, clientID string, p draft.Patch) (*State, error)
	Next(ctx context.Context, clientID string) (*State, error)
	Back(ctx context.Context, clientID string) (*State, error)
	ApplyPromo(ctx context.Context, clientID, code string) (*State, error)
	RemovePromo(ctx context.Context, clientID string) (*State, error)
	Submit(ctx context.Context, clientID string) (*booking.Booking, error)
	Discard(ctx context.Context, clientID string) error
}

type checkoutUseCaseImpl struct {
	registry *Registry
}

func NewCheckoutUseCase(registry *Registry) CheckoutUseCase {
	return &checkoutUseCaseImpl{registry: registry}
}

// State is the page load: it refreshes the catalog every time.
func (u *checkoutUseCaseImpl) State(ctx context.Context, clientID string) (*State, error) {
	w, err := u.registry.Mount(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return w.State()
}

func (u *checkoutUseCaseImpl) Patch(ctx context.Context, clientID string, p draft.Patch) (*State, error) {
	return u.then(ctx, clientID, func(w *Wizard) error { return w.Apply(ctx, p) })
}

func (u *checkoutUseCaseImpl) Next(ctx context.Context, clientID string) (*State, error) {
	return u.then(ctx, clientID, func(w *Wizard) error { return w.Next(ctx) })
}

func (u *checkoutUseCaseImpl) Back(ctx context.Context, clientID string) (*State, error) {
	return u.then(ctx, clientID, func(w *Wizard) error { return w.Back(ctx) })
}

func (u *checkoutUseCaseImpl) ApplyPromo(ctx context.Context, clientID, code string) (*State, error) {
	return u.then(ctx, clientID, func(w *Wizard) error { return w.ApplyPromoCode(ctx, code) })
}

func (u *checkoutUseCaseImpl) RemovePromo(ctx context.Context, clientID string) (*State, error) {
	return u.then(ctx, clientID, func(w *Wizard) error { return w.RemovePromoCode() })
}

func (u *checkoutUseCaseImpl) Submit(ctx context.Context, clientID string) (*booking.Booking, error) {
	w, err := u.registry.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return w.Submit(ctx)
}

func (u *checkoutUseCaseImpl) Discard(ctx context.Context, clientID string) error {
	w, err := u.registry.Get(ctx, clientID)
	if err != nil {
		return err
	}
	if err := w.Discard(ctx); err != nil {
		return err
	}
	u.registry.Forget(clientID)
	return nil
}

func (u *checkoutUseCaseImpl) then(ctx context.Context, clientID string, op func(w *Wizard) error) (*State, error) {
	w, err := u.registry.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if opErr := op(w); opErr != nil {
		st, stErr := w.State()
		if stErr != nil {
			u.registry.logger.ErrorContext(ctx, "Failed to snapshot checkout state",
				slog.String("client_id", clientID),
				slog.String("error", stErr.Error()),
			)
		}
		return st, opErr
	}
	return w.State()
}

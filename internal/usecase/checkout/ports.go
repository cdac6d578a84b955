package checkout

import (
	"context"

	"booking-checkout/internal/domain/booking"
	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/promotion"
)

type CatalogSource interface {
	ListServices(ctx context.Context) ([]catalog.Service, error)
	ListProviders(ctx context.Context) ([]catalog.Provider, error)
}

type PromotionGateway interface {
	ValidatePromoCode(ctx context.Context, code, providerID, serviceName string) (*promotion.Application, error)
	IncrementPromotionUsage(ctx context.Context, promotionID string) error
}

type BookingGateway interface {
	CreateBooking(ctx context.Context, req booking.Request) (*booking.Booking, error)
}

// Backend is everything the wizard needs from the marketplace.
type Backend interface {
	CatalogSource
	PromotionGateway
	BookingGateway
}

// userMessager is implemented by backend errors that carry text meant for the client.
type userMessager interface {
	UserMessage() string
}

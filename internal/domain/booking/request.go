package booking

import (
	"maps"
	"time"

	"booking-checkout/internal/domain/draft"
	"booking-checkout/internal/domain/pricing"
	"booking-checkout/internal/domain/promotion"
	"booking-checkout/internal/pkg/ptr"
)

// StatusUpcoming is the status the client proposes for a new booking; the backend may
// change it.
const StatusUpcoming = "upcoming"

// Request is the create-booking payload sent to the marketplace backend.
type Request struct {
	ServiceID   string    `json:"serviceId"`
	ProviderID  string    `json:"providerId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`

	Price         *int64 `json:"price"`
	OriginalPrice *int64 `json:"originalPrice"`

	PromotionID    *string                 `json:"promotionId,omitempty"`
	PromoCode      *string                 `json:"promoCode,omitempty"`
	DiscountType   *promotion.DiscountType `json:"discountType,omitempty"`
	DiscountValue  *float64                `json:"discountValue,omitempty"`
	DiscountAmount *int64                  `json:"discountAmount,omitempty"`

	DepositAmount     *int64 `json:"depositAmount,omitempty"`
	FinalAmount       *int64 `json:"finalAmount,omitempty"`
	DepositPercentage *int   `json:"depositPercentage,omitempty"`

	CustomInputValues map[string]string `json:"customInputValues,omitempty"`

	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Booking is the backend's answer to a create call; only the id is relied upon.
type Booking struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// NewRequest assembles the payload from a validated draft and the quote computed for it.
func NewRequest(d *draft.Draft, scheduledAt time.Time, q pricing.Quote) Request {
	req := Request{
		ServiceID:      d.ServiceID,
		ProviderID:     d.ProviderID,
		ScheduledAt:    scheduledAt,
		Location:       d.Location,
		Notes:          d.Notes,
		Status:         StatusUpcoming,
		Price:          q.EffectivePrice(),
		OriginalPrice:  ptr.Clone(q.BasePrice),
		IdempotencyKey: d.IdempotencyKey,
	}

	if p := q.Promotion; p != nil {
		req.PromotionID = ptr.To(p.ID)
		req.PromoCode = ptr.To(p.PromoCode)
		req.DiscountType = ptr.To(p.DiscountType)
		req.DiscountValue = ptr.To(p.DiscountValue)
		req.DiscountAmount = ptr.To(q.DiscountAmount)
	}

	if dep := q.Deposit; dep != nil {
		req.DepositAmount = ptr.To(dep.DepositAmount)
		req.FinalAmount = ptr.To(dep.FinalAmount)
		req.DepositPercentage = ptr.To(dep.Percentage)
	}

	if d.HasCustomValues() {
		req.CustomInputValues = maps.Clone(d.CustomInputValues)
	}

	return req
}

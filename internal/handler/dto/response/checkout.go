package response

import (
	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/draft"
	"booking-checkout/internal/domain/pricing"
	"booking-checkout/internal/usecase/checkout"
)

type DraftResponse struct {
	ServiceID         string            `json:"serviceId"`
	ProviderID        string            `json:"providerId"`
	ScheduledDate     string            `json:"scheduledDate"`
	ScheduledTime     string            `json:"scheduledTime"`
	Location          string            `json:"location"`
	CustomInputValues map[string]string `json:"customInputValues"`
	Notes             string            `json:"notes"`
}

type PromotionResponse struct {
	ID            string  `json:"id"`
	PromoCode     string  `json:"promoCode"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
}

type DepositResponse struct {
	Percentage    int   `json:"depositPercentage"`
	DepositAmount int64 `json:"depositAmount"`
	FinalAmount   int64 `json:"finalAmount"`
}

// QuoteResponse amounts are in cents; nil prices mean the service has no list price.
type QuoteResponse struct {
	BasePrice      *int64             `json:"basePrice"`
	DiscountAmount int64              `json:"discountAmount"`
	FinalPrice     *int64             `json:"finalPrice"`
	EffectivePrice *int64             `json:"effectivePrice"`
	Promotion      *PromotionResponse `json:"promotion,omitempty"`
	Deposit        *DepositResponse   `json:"deposit,omitempty"`
}

type CheckoutResponse struct {
	Step           string             `json:"step"`
	StepIndex      int                `json:"stepIndex"`
	Steps          []string           `json:"steps"`
	Draft          DraftResponse      `json:"draft"`
	Quote          QuoteResponse      `json:"quote"`
	PromoCode      string             `json:"promoCode"`
	PromoError     string             `json:"promoError,omitempty"`
	FieldErrors    map[string]string  `json:"fieldErrors,omitempty"`
	Submitting     bool               `json:"submitting"`
	ConfirmationID string             `json:"confirmationId,omitempty"`
	Services       []catalog.Service  `json:"services"`
	Providers      []catalog.Provider `json:"providers"`
}

type BookingCreatedResponse struct {
	BookingID string `json:"bookingId"`
}

func FromState(s *checkout.State) *CheckoutResponse {
	res := &CheckoutResponse{
		Step:           s.Step.String(),
		StepIndex:      s.Step.Index(),
		Steps:          stepNames(),
		Draft:          fromDraft(&s.Draft),
		Quote:          fromQuote(s.Quote),
		PromoCode:      s.PromoCode,
		PromoError:     s.PromoError,
		Submitting:     s.Submitting,
		ConfirmationID: s.ConfirmationID,
		Services:       s.Services,
		Providers:      s.Providers,
	}
	if len(s.FieldErrors) > 0 {
		res.FieldErrors = map[string]string(s.FieldErrors)
	}
	if res.Services == nil {
		res.Services = []catalog.Service{}
	}
	if res.Providers == nil {
		res.Providers = []catalog.Provider{}
	}
	return res
}

func fromDraft(d *draft.Draft) DraftResponse {
	values := d.CustomInputValues
	if values == nil {
		values = map[string]string{}
	}
	return DraftResponse{
		ServiceID:         d.ServiceID,
		ProviderID:        d.ProviderID,
		ScheduledDate:     d.ScheduledDate,
		ScheduledTime:     d.ScheduledTime,
		Location:          d.Location,
		CustomInputValues: values,
		Notes:             d.Notes,
	}
}

func fromQuote(q pricing.Quote) QuoteResponse {
	res := QuoteResponse{
		BasePrice:      q.BasePrice,
		DiscountAmount: q.DiscountAmount,
		FinalPrice:     q.FinalPrice,
		EffectivePrice: q.EffectivePrice(),
	}
	if p := q.Promotion; p != nil {
		res.Promotion = &PromotionResponse{
			ID:            p.ID,
			PromoCode:     p.PromoCode,
			DiscountType:  p.DiscountType.String(),
			DiscountValue: p.DiscountValue,
		}
	}
	if d := q.Deposit; d != nil {
		res.Deposit = &DepositResponse{
			Percentage:    d.Percentage,
			DepositAmount: d.DepositAmount,
			FinalAmount:   d.FinalAmount,
		}
	}
	return res
}

func stepNames() []string {
	steps := draft.Steps()
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.String()
	}
	return names
}

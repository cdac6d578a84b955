//go:build unit || e2e

package builder

import (
	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/draft"
	"booking-checkout/internal/domain/pricing"
	"booking-checkout/internal/domain/promotion"
	reqdto "booking-checkout/internal/handler/dto/request"
	"booking-checkout/internal/pkg/ptr"
	"booking-checkout/internal/usecase/checkout"
)

const (
	ServiceID    = "svc-grooming"
	ServiceName  = "Dog Grooming"
	ProviderID   = "prov-anna"
	ProviderName = "Anna's Pet Care"
	PetNameField = "petName"
)

// CheckoutBuilder assembles catalog records, drafts and wizard states for tests.
type CheckoutBuilder struct {
	Service   catalog.Service
	Provider  catalog.Provider
	Draft     draft.Draft
	Step      draft.Step
	Promotion *promotion.Application
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		Service: catalog.Service{
			ID:                ServiceID,
			Name:              ServiceName,
			BasePrice:         ptr.To(int64(10000)),
			RequiresDeposit:   true,
			DepositPercentage: 25,
			CustomFields: []catalog.CustomField{
				{ID: PetNameField, Label: "Pet name", Type: "text", Required: true},
			},
		},
		Provider: catalog.Provider{
			ID:         ProviderID,
			Name:       ProviderName,
			ServiceIDs: []string{ServiceID},
		},
		Draft: draft.Draft{CustomInputValues: map[string]string{}},
		Step:  draft.StepService,
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

// Filled completes every step so the draft is ready for review.
func (b *CheckoutBuilder) Filled() *CheckoutBuilder {
	b.Draft = draft.Draft{
		ServiceID:         b.Service.ID,
		ProviderID:        b.Provider.ID,
		ScheduledDate:     "2025-03-14",
		ScheduledTime:     "10:30",
		Location:          "12 Harbour Street",
		CustomInputValues: map[string]string{PetNameField: "Rex"},
		Notes:             "Ring twice",
		IdempotencyKey:    "idem-1",
	}
	b.Step = draft.StepReview
	b.Draft.SetStep(b.Step)
	return b
}

func (b *CheckoutBuilder) WithPromotion(discountType promotion.DiscountType, value float64) *CheckoutBuilder {
	b.Promotion = &promotion.Application{
		ID:            "promo-1",
		PromoCode:     "SPRING",
		DiscountType:  discountType,
		DiscountValue: value,
	}
	return b
}

func (b *CheckoutBuilder) BuildServices() []catalog.Service {
	return []catalog.Service{b.Service}
}

func (b *CheckoutBuilder) BuildProviders() []catalog.Provider {
	return []catalog.Provider{b.Provider}
}

func (b *CheckoutBuilder) BuildDraft() *draft.Draft {
	return b.Draft.Clone()
}

func (b *CheckoutBuilder) BuildState() *checkout.State {
	d := b.Draft.Clone()
	d.SetStep(b.Step)
	st := &checkout.State{
		Step:      b.Step,
		Draft:     *d,
		Services:  b.BuildServices(),
		Providers: b.BuildProviders(),
	}
	if d.ServiceID == b.Service.ID {
		svc := b.Service
		st.Quote = pricing.NewQuote(&svc, b.Promotion)
	}
	if b.Promotion != nil {
		st.PromoCode = b.Promotion.PromoCode
	}
	return st
}

func (b *CheckoutBuilder) BuildPatchRequestDTO() reqdto.PatchDraftRequest {
	d := b.Draft
	return reqdto.PatchDraftRequest{
		ServiceID:         ptr.To(d.ServiceID),
		ProviderID:        ptr.To(d.ProviderID),
		ScheduledDate:     ptr.To(d.ScheduledDate),
		ScheduledTime:     ptr.To(d.ScheduledTime),
		Location:          ptr.To(d.Location),
		Notes:             ptr.To(d.Notes),
		CustomInputValues: d.CustomInputValues,
	}
}

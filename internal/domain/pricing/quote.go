package pricing

import (
	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/promotion"
	"booking-checkout/internal/pkg/ptr"
)

// Deposit splits an amount into what is collected up front and what remains.
type Deposit struct {
	Percentage    int   `json:"depositPercentage"`
	DepositAmount int64 `json:"depositAmount"`
	FinalAmount   int64 `json:"finalAmount"`
}

// SplitDeposit truncates the deposit toward zero so the two parts always sum to amount.
func SplitDeposit(amount int64, percentage int) Deposit {
	percentage = max(0, min(percentage, 100))
	deposit := amount * int64(percentage) / 100
	return Deposit{
		Percentage:    percentage,
		DepositAmount: deposit,
		FinalAmount:   amount - deposit,
	}
}

// Quote is derived from the selected service and applied promotion on every read.
// All amounts are in cents.
type Quote struct {
	BasePrice      *int64                 `json:"basePrice"`
	DiscountAmount int64                  `json:"discountAmount"`
	FinalPrice     *int64                 `json:"finalPrice"`
	Promotion      *promotion.Application `json:"promotion,omitempty"`
	Deposit        *Deposit               `json:"deposit,omitempty"`
}

func NewQuote(service *catalog.Service, promo *promotion.Application) Quote {
	var q Quote
	if service.HasPrice() {
		q.BasePrice = ptr.Clone(service.BasePrice)
	}
	if promo != nil {
		p := *promo
		q.Promotion = &p
	}

	if q.BasePrice != nil {
		if q.Promotion != nil {
			q.DiscountAmount = q.Promotion.DiscountAmount(*q.BasePrice)
		}
		q.FinalPrice = ptr.To(*q.BasePrice - q.DiscountAmount)
	}

	if service != nil && service.RequiresDeposit {
		if effective := q.EffectivePrice(); effective != nil {
			d := SplitDeposit(*effective, service.DepositPercentage)
			q.Deposit = &d
		}
	}
	return q
}

func (q Quote) HasDiscount() bool {
	return q.Promotion != nil
}

// EffectivePrice is what the client is charged: the discounted price when a promotion
// is applied, the base price otherwise, nil when the service has no price.
func (q Quote) EffectivePrice() *int64 {
	if q.HasDiscount() {
		return ptr.Clone(q.FinalPrice)
	}
	return ptr.Clone(q.BasePrice)
}

//go:build unit

package pricing_test

import (
	"testing"

	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/pricing"
	"booking-checkout/internal/domain/promotion"
	"booking-checkout/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSplitDeposit(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		pct    int
		want   pricing.Deposit
	}{
		{name: "30 percent of 100.00", amount: 10000, pct: 30, want: pricing.Deposit{Percentage: 30, DepositAmount: 3000, FinalAmount: 7000}},
		{name: "truncates toward zero", amount: 999, pct: 33, want: pricing.Deposit{Percentage: 33, DepositAmount: 329, FinalAmount: 670}},
		{name: "zero percent", amount: 5000, pct: 0, want: pricing.Deposit{Percentage: 0, DepositAmount: 0, FinalAmount: 5000}},
		{name: "percentage is clamped", amount: 5000, pct: 150, want: pricing.Deposit{Percentage: 100, DepositAmount: 5000, FinalAmount: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.SplitDeposit(tc.amount, tc.pct)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.amount, got.DepositAmount+got.FinalAmount)
		})
	}
}

func TestNewQuote(t *testing.T) {
	percent20 := &promotion.Application{ID: "p1", PromoCode: "SAVE20", DiscountType: promotion.DiscountPercentage, DiscountValue: 20}
	fixed10 := &promotion.Application{ID: "p2", PromoCode: "TENOFF", DiscountType: promotion.DiscountFixed, DiscountValue: 10}

	cases := []struct {
		name    string
		service *catalog.Service
		promo   *promotion.Application
		want    pricing.Quote
	}{
		{
			name: "no service selected",
			want: pricing.Quote{},
		},
		{
			name:    "service without price",
			service: &catalog.Service{ID: "s"},
			promo:   percent20,
			want:    pricing.Quote{Promotion: percent20},
		},
		{
			name:    "base price only",
			service: &catalog.Service{ID: "s", BasePrice: ptr.To(int64(10000))},
			want:    pricing.Quote{BasePrice: ptr.To(int64(10000)), FinalPrice: ptr.To(int64(10000))},
		},
		{
			name:    "percentage promotion",
			service: &catalog.Service{ID: "s", BasePrice: ptr.To(int64(10000))},
			promo:   percent20,
			want: pricing.Quote{
				BasePrice:      ptr.To(int64(10000)),
				DiscountAmount: 2000,
				FinalPrice:     ptr.To(int64(8000)),
				Promotion:      percent20,
			},
		},
		{
			name:    "fixed promotion larger than price",
			service: &catalog.Service{ID: "s", BasePrice: ptr.To(int64(500))},
			promo:   fixed10,
			want: pricing.Quote{
				BasePrice:      ptr.To(int64(500)),
				DiscountAmount: 500,
				FinalPrice:     ptr.To(int64(0)),
				Promotion:      fixed10,
			},
		},
		{
			name:    "deposit on base price",
			service: &catalog.Service{ID: "s", BasePrice: ptr.To(int64(10000)), RequiresDeposit: true, DepositPercentage: 30},
			want: pricing.Quote{
				BasePrice:  ptr.To(int64(10000)),
				FinalPrice: ptr.To(int64(10000)),
				Deposit:    &pricing.Deposit{Percentage: 30, DepositAmount: 3000, FinalAmount: 7000},
			},
		},
		{
			name:    "deposit on discounted price",
			service: &catalog.Service{ID: "s", BasePrice: ptr.To(int64(10000)), RequiresDeposit: true, DepositPercentage: 30},
			promo:   percent20,
			want: pricing.Quote{
				BasePrice:      ptr.To(int64(10000)),
				DiscountAmount: 2000,
				FinalPrice:     ptr.To(int64(8000)),
				Promotion:      percent20,
				Deposit:        &pricing.Deposit{Percentage: 30, DepositAmount: 2400, FinalAmount: 5600},
			},
		},
		{
			name:    "deposit flag without price",
			service: &catalog.Service{ID: "s", RequiresDeposit: true, DepositPercentage: 30},
			want:    pricing.Quote{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.NewQuote(tc.service, tc.promo)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("quote mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEffectivePrice(t *testing.T) {
	svc := &catalog.Service{ID: "s", BasePrice: ptr.To(int64(4000))}

	assert.Equal(t, int64(4000), *pricing.NewQuote(svc, nil).EffectivePrice())

	q := pricing.NewQuote(svc, &promotion.Application{ID: "p", DiscountType: promotion.DiscountFixed, DiscountValue: 15})
	assert.Equal(t, int64(2500), *q.EffectivePrice())

	assert.Nil(t, pricing.NewQuote(nil, nil).EffectivePrice())
}

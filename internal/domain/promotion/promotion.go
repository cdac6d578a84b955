package promotion

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidDiscountType    = errors.New("invalid discount type")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrMissingPromotionID     = errors.New("promotion id is required")
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercentage, DiscountFixed:
		return true
	default:
		return false
	}
}

// Application is a promotion the backend accepted for a (provider, service) pair.
// DiscountValue is a percentage (0-100) or an amount in major currency units.
type Application struct {
	ID            string       `json:"id"`
	PromoCode     string       `json:"promoCode"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
}

func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

func (a Application) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrMissingPromotionID
	}
	switch a.DiscountType {
	case DiscountPercentage:
		if a.DiscountValue < 0 || a.DiscountValue > 100 || math.IsNaN(a.DiscountValue) {
			return ErrInvalidDiscountPercent
		}
	case DiscountFixed:
		if a.DiscountValue < 0 || math.IsNaN(a.DiscountValue) {
			return ErrInvalidDiscountAmount
		}
	default:
		return ErrInvalidDiscountType
	}
	return nil
}

func (a Application) IsPercentage() bool {
	return a.DiscountType == DiscountPercentage
}

// FixedAmountCents converts a fixed discount entered in major units to cents.
func (a Application) FixedAmountCents() int64 {
	return int64(math.Round(a.DiscountValue * 100))
}

// DiscountAmount returns the discount in cents for basePriceCents. A fixed discount never
// exceeds the base price.
func (a Application) DiscountAmount(basePriceCents int64) int64 {
	if basePriceCents <= 0 {
		return 0
	}
	if a.IsPercentage() {
		return int64(math.Round(float64(basePriceCents) * a.DiscountValue / 100))
	}
	return min(a.FixedAmountCents(), basePriceCents)
}

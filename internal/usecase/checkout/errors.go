package checkout

import "booking-checkout/internal/pkg/errs"

const (
	msgPromoCodeRequired = "Please enter a promo code"
	msgPromoInvalid      = "Invalid promo code"
	msgPromoNeedsService = "Please select a service and provider first"
	msgInvalidSchedule   = "Please select a valid date and time"
)

var (
	ErrNotMounted          = errs.New("checkout is not mounted")
	ErrCatalogUnavailable  = errs.New("service catalog unavailable")
	ErrSubmissionInFlight  = errs.New("booking submission already in progress")
	ErrNotOnReview         = errs.New("booking can only be submitted from the review step")
	ErrServiceNotFound     = errs.New("service not found")
	ErrProviderNotFound    = errs.New("provider not found")
	ErrServiceNotSelected  = errs.New("service and provider must be selected")
	ErrPromoCodeRequired   = errs.New("promo code required")
	ErrPromotionRejected   = errs.New("promo code rejected")
	ErrPromotionStale      = errs.New("selection changed while validating promo code")
	ErrBookingCreateFailed = errs.New("failed to create booking")
)

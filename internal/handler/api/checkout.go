package api

import (
	"errors"
	"net/http"

	"booking-checkout/internal/domain/draft"
	reqdto "booking-checkout/internal/handler/dto/request"
	resdto "booking-checkout/internal/handler/dto/response"
	"booking-checkout/internal/handler/httperr"
	"booking-checkout/internal/handler/middleware"
	"booking-checkout/internal/pkg/errs"
	"booking-checkout/internal/usecase/checkout"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	uc checkout.CheckoutUseCase
}

func NewCheckoutHandler(uc checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// @Summary Get checkout
// @Description Current wizard state of the authenticated client. The first call restores a saved draft.
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /checkout [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	state, err := h.uc.State(c.Request.Context(), clientID)
	if err != nil {
		abortCheckout(c, err, state)
		return
	}
	c.JSON(http.StatusOK, resdto.FromState(state))
}

// @Summary Update draft
// @Description Patch draft fields. Omitted fields are kept, changing the service resets custom values and drops the promotion.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PatchDraftRequest true "Draft fields"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/draft [patch]
func (h *CheckoutHandler) PatchDraft(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.PatchDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	state, err := h.uc.Patch(c.Request.Context(), clientID, req.ToDomain())
	if err != nil {
		abortCheckout(c, err, state)
		return
	}
	c.JSON(http.StatusOK, resdto.FromState(state))
}

// @Summary Next step
// @Description Validate the current step and move forward
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 422 {object} httperr.Response
// @Router /checkout/next [post]
func (h *CheckoutHandler) Next(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	state, err := h.uc.Next(c.Request.Context(), clientID)
	if err != nil {
		abortCheckout(c, err, state)
		return
	}
	c.JSON(http.StatusOK, resdto.FromState(state))
}

// @Summary Previous step
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 409 {object} httperr.Response
// @Router /checkout/back [post]
func (h *CheckoutHandler) Back(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	state, err := h.uc.Back(c.Request.Context(), clientID)
	if err != nil {
		abortCheckout(c, err, state)
		return
	}
	c.JSON(http.StatusOK, resdto.FromState(state))
}

// @Summary Apply promo code
// @Description Validate a promo code for the selected provider and service
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyPromoRequest true "Promo code"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/promo [post]
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	state, err := h.uc.ApplyPromo(c.Request.Context(), clientID, req.Code)
	if err != nil {
		abortCheckout(c, err, state)
		return
	}
	c.JSON(http.StatusOK, resdto.FromState(state))
}

// @Summary Remove promo code
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 409 {object} httperr.Response
// @Router /checkout/promo [delete]
func (h *CheckoutHandler) RemovePromo(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	state, err := h.uc.RemovePromo(c.Request.Context(), clientID)
	if err != nil {
		abortCheckout(c, err, state)
		return
	}
	c.JSON(http.StatusOK, resdto.FromState(state))
}

// @Summary Submit booking
// @Description Create the booking from the review step. The draft is cleared only on success.
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.BookingCreatedResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	created, err := h.uc.Submit(c.Request.Context(), clientID)
	if err != nil {
		abortCheckout(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.BookingCreatedResponse{BookingID: created.ID})
}

// @Summary Discard draft
// @Tags checkout
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 409 {object} httperr.Response
// @Router /checkout [delete]
func (h *CheckoutHandler) Discard(c *gin.Context) {
	clientID, ok := clientIDOrAbort(c)
	if !ok {
		return
	}
	if err := h.uc.Discard(c.Request.Context(), clientID); err != nil {
		abortCheckout(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func clientIDOrAbort(c *gin.Context) (string, bool) {
	clientID, ok := middleware.GetClientID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return "", false
	}
	return clientID, true
}

// abortCheckout maps wizard errors to responses. state, when present, supplies the
// message the wizard recorded for a promo rejection.
func abortCheckout(c *gin.Context, err error, state *checkout.State) {
	var fieldErrs draft.FieldErrors
	if errors.As(err, &fieldErrs) {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", map[string]string(fieldErrs))
		return
	}

	switch {
	case errs.Is(err, checkout.ErrPromoCodeRequired),
		errs.Is(err, checkout.ErrPromotionRejected),
		errs.Is(err, checkout.ErrServiceNotSelected):
		msg := "Invalid promo code"
		if state != nil && state.PromoError != "" {
			msg = state.PromoError
		}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, msg, nil)
	case errs.Is(err, checkout.ErrServiceNotFound):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Unknown service", nil)
	case errs.Is(err, checkout.ErrProviderNotFound):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Provider is not available for this service", nil)
	case errs.Is(err, checkout.ErrPromotionStale):
		httperr.AbortWithError(c, http.StatusConflict, err, "Selection changed, please apply the promo code again", nil)
	case errs.Is(err, checkout.ErrSubmissionInFlight):
		httperr.AbortWithError(c, http.StatusConflict, err, "A booking submission is already in progress", nil)
	case errs.Is(err, checkout.ErrNotOnReview):
		httperr.AbortWithError(c, http.StatusConflict, err, "Review your booking before submitting", nil)
	case errs.Is(err, checkout.ErrBookingCreateFailed):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Failed to create booking, please try again", nil)
	case errs.Is(err, checkout.ErrCatalogUnavailable), errs.Is(err, checkout.ErrNotMounted):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Services are temporarily unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

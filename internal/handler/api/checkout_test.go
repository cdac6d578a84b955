//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"booking-checkout/internal/domain/booking"
	"booking-checkout/internal/domain/draft"
	"booking-checkout/internal/domain/promotion"
	"booking-checkout/internal/handler/api"
	resdto "booking-checkout/internal/handler/dto/response"
	"booking-checkout/internal/pkg/errs"
	"booking-checkout/internal/pkg/ptr"
	"booking-checkout/internal/usecase/checkout"
	"booking-checkout/tests/common/builder"
	"booking-checkout/tests/common/httptest"
	"booking-checkout/tests/common/testutil"
	checkoutmock "booking-checkout/tests/mock/checkout"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testClientID = "client-42"

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	ctrl    *gomock.Controller
	usecase *checkoutmock.MockCheckoutUseCase
	handler *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.ctrl = gomock.NewController(s.T())
	s.usecase = checkoutmock.NewMockCheckoutUseCase(s.ctrl)
	s.handler = api.NewCheckoutHandler(s.usecase)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("client_id", testClientID)
		c.Next()
	}

	g := s.router.Group("/api/checkout", authMiddleware)
	g.GET("", s.handler.Get)
	g.DELETE("", s.handler.Discard)
	g.PATCH("/draft", s.handler.PatchDraft)
	g.POST("/next", s.handler.Next)
	g.POST("/back", s.handler.Back)
	g.POST("/promo", s.handler.ApplyPromo)
	g.DELETE("/promo", s.handler.RemovePromo)
	g.POST("/submit", s.handler.Submit)

	// route without auth to cover the missing client id guard
	s.router.GET("/unauthenticated/checkout", s.handler.Get)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestGet() {
	url := "/api/checkout"

	s.Run("success: returns state with quote and deposit", func() {
		state := builder.NewCheckoutBuilder().Filled().
			WithPromotion(promotion.DiscountPercentage, 10).
			BuildState()
		s.usecase.EXPECT().State(gomock.Any(), testClientID).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var res resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("review", res.Step)
		s.Equal(5, res.StepIndex)
		s.Equal([]string{"service", "schedule", "location", "custom", "notes", "review"}, res.Steps)
		s.Equal("SPRING", res.PromoCode)

		want := resdto.QuoteResponse{
			BasePrice:      ptr.To(int64(10000)),
			DiscountAmount: 1000,
			FinalPrice:     ptr.To(int64(9000)),
			EffectivePrice: ptr.To(int64(9000)),
			Promotion: &resdto.PromotionResponse{
				ID: "promo-1", PromoCode: "SPRING", DiscountType: "percentage", DiscountValue: 10,
			},
			Deposit: &resdto.DepositResponse{Percentage: 25, DepositAmount: 2250, FinalAmount: 6750},
		}
		if diff := cmp.Diff(want, res.Quote); diff != "" {
			s.T().Errorf("quote mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: empty draft renders empty collections", func() {
		state := &checkout.State{Step: draft.StepService}
		s.usecase.EXPECT().State(gomock.Any(), testClientID).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"services":[]`)
		s.Contains(rec.Body.String(), `"customInputValues":{}`)
		s.Contains(rec.Body.String(), `"basePrice":null`)
	})

	s.Run("failure: catalog unavailable returns 503", func() {
		err := errs.Mark(errs.New("connection refused"), checkout.ErrCatalogUnavailable)
		s.usecase.EXPECT().State(gomock.Any(), testClientID).Return(nil, err).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "temporarily unavailable")
	})

	s.Run("failure: unexpected error returns 500", func() {
		s.usecase.EXPECT().State(gomock.Any(), testClientID).Return(nil, errs.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("failure: no token returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("failure: missing client id returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/unauthenticated/checkout", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestPatchDraft
// ================================================================================

type testCasePatch struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

func (s *CheckoutHandlerTestSuite) TestPatchDraft() {
	url := "/api/checkout/draft"
	b := builder.NewCheckoutBuilder().Filled()
	reqBody := b.BuildPatchRequestDTO()

	s.Run("success: forwards only the fields present", func() {
		body := map[string]any{"location": "1 Main St", "customInputValues": map[string]string{"petName": "Rex"}}
		want := draft.Patch{
			Location:          ptr.To("1 Main St"),
			CustomInputValues: map[string]string{"petName": "Rex"},
		}
		s.usecase.EXPECT().
			Patch(gomock.Any(), testClientID, gomock.Cond(func(x any) bool { return cmp.Equal(want, x) })).
			Return(b.BuildState(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: empty string clears a field", func() {
		s.usecase.EXPECT().
			Patch(gomock.Any(), testClientID, gomock.Cond(func(x any) bool {
				p, ok := x.(draft.Patch)
				return ok && p.Notes != nil && *p.Notes == "" && p.ServiceID == nil
			})).
			Return(b.BuildState(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"notes": ""}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	cases := []testCasePatch{
		{name: "location length OK (500 chars)", mutate: testutil.Field("location", strings.Repeat("a", 500)), expectCode: http.StatusOK},
		{name: "location length invalid (501 chars)", mutate: testutil.Field("location", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
		{name: "notes length OK (2000 chars)", mutate: testutil.Field("notes", strings.Repeat("a", 2000)), expectCode: http.StatusOK},
		{name: "notes length invalid (2001 chars)", mutate: testutil.Field("notes", strings.Repeat("a", 2001)), expectCode: http.StatusBadRequest},
		{name: "custom value OK (1000 chars)", mutate: testutil.CustomValue("petName", strings.Repeat("a", 1000)), expectCode: http.StatusOK},
		{name: "custom value invalid (1001 chars)", mutate: testutil.CustomValue("petName", strings.Repeat("a", 1001)), expectCode: http.StatusBadRequest},
		{name: "custom field id invalid (129 chars)", mutate: testutil.CustomValue(strings.Repeat("k", 129), "x"), expectCode: http.StatusBadRequest},
		{name: "wrong type for serviceId", mutate: testutil.Field("serviceId", 42), expectCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			if tc.expectCode == http.StatusOK {
				s.usecase.EXPECT().Patch(gomock.Any(), testClientID, gomock.Any()).Return(b.BuildState(), nil).Times(1)
			}
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
			s.Equal(tc.expectCode, rec.Code, rec.Body.String())
		})
	}

	s.Run("failure: malformed JSON returns 400", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPatch, url, "{", "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("failure: unknown service returns 422", func() {
		err := errs.Wrapf(checkout.ErrServiceNotFound, "service %s", "nope")
		s.usecase.EXPECT().Patch(gomock.Any(), testClientID, gomock.Any()).Return(nil, err).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"serviceId": "nope"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Unknown service")
	})

	s.Run("failure: submission in flight returns 409", func() {
		s.usecase.EXPECT().Patch(gomock.Any(), testClientID, gomock.Any()).Return(nil, checkout.ErrSubmissionInFlight).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"notes": "x"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already in progress")
	})
}

// ================================================================================
// TestNavigation
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestNavigation() {
	s.Run("success: next returns the advanced state", func() {
		state := builder.NewCheckoutBuilder().With(func(b *builder.CheckoutBuilder) {
			b.Draft.ServiceID = builder.ServiceID
			b.Draft.ProviderID = builder.ProviderID
			b.Step = draft.StepSchedule
		}).BuildState()
		s.usecase.EXPECT().Next(gomock.Any(), testClientID).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/checkout/next", nil, "bearer-token")
		var res resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("schedule", res.Step)
	})

	s.Run("failure: incomplete step returns 422 with field detail", func() {
		fe := draft.FieldErrors{draft.FieldServiceID: "Please select a service"}
		s.usecase.EXPECT().Next(gomock.Any(), testClientID).Return(&checkout.State{FieldErrors: fe}, fe).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/checkout/next", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
		httptest.AssertErrorDetail(s.T(), rec, draft.FieldServiceID)
	})

	s.Run("success: back", func() {
		state := builder.NewCheckoutBuilder().BuildState()
		s.usecase.EXPECT().Back(gomock.Any(), testClientID).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/checkout/back", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})
}

// ================================================================================
// TestPromo
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestPromo() {
	url := "/api/checkout/promo"

	s.Run("success: applied promotion is priced", func() {
		state := builder.NewCheckoutBuilder().Filled().WithPromotion(promotion.DiscountFixed, 15).BuildState()
		s.usecase.EXPECT().ApplyPromo(gomock.Any(), testClientID, "SPRING").Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "SPRING"}, "bearer-token")
		var res resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(int64(1500), res.Quote.DiscountAmount)
		s.Equal(int64(8500), *res.Quote.EffectivePrice)
	})

	s.Run("failure: rejected code surfaces the backend message", func() {
		state := &checkout.State{PromoError: "This code has expired"}
		err := errs.Mark(errs.New("backend said no"), checkout.ErrPromotionRejected)
		s.usecase.EXPECT().ApplyPromo(gomock.Any(), testClientID, "OLD").Return(state, err).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "OLD"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "This code has expired")
	})

	s.Run("failure: rejected code without state falls back", func() {
		err := errs.Mark(errs.New("backend said no"), checkout.ErrPromotionRejected)
		s.usecase.EXPECT().ApplyPromo(gomock.Any(), testClientID, "OLD").Return(nil, err).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "OLD"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid promo code")
	})

	s.Run("failure: blank code returns 422", func() {
		state := &checkout.State{PromoError: "Please enter a promo code"}
		s.usecase.EXPECT().ApplyPromo(gomock.Any(), testClientID, "").Return(state, checkout.ErrPromoCodeRequired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": ""}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Please enter a promo code")
	})

	s.Run("failure: stale validation returns 409", func() {
		s.usecase.EXPECT().ApplyPromo(gomock.Any(), testClientID, "SPRING").Return(nil, checkout.ErrPromotionStale).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "SPRING"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Selection changed")
	})

	s.Run("failure: code too long returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": strings.Repeat("X", 65)}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("success: remove promotion", func() {
		state := builder.NewCheckoutBuilder().Filled().BuildState()
		s.usecase.EXPECT().RemovePromo(gomock.Any(), testClientID).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		var res resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Nil(res.Quote.Promotion)
		s.Equal(int64(0), res.Quote.DiscountAmount)
	})
}

// ================================================================================
// TestSubmit
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestSubmit() {
	url := "/api/checkout/submit"

	s.Run("success: returns 201 with booking id", func() {
		s.usecase.EXPECT().Submit(gomock.Any(), testClientID).Return(&booking.Booking{ID: "bk-1"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		var res resdto.BookingCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal("bk-1", res.BookingID)
	})

	errCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "not on review", err: checkout.ErrNotOnReview, expectCode: http.StatusConflict, expectMsg: "Review your booking"},
		{name: "in flight", err: checkout.ErrSubmissionInFlight, expectCode: http.StatusConflict, expectMsg: "already in progress"},
		{
			name:       "backend failure",
			err:        errs.Mark(errs.Wrap(errs.New("502 from upstream"), "create booking"), checkout.ErrBookingCreateFailed),
			expectCode: http.StatusBadGateway,
			expectMsg:  "Failed to create booking",
		},
		{
			name:       "invalid draft",
			err:        draft.FieldErrors{draft.FieldLocation: "Please enter a location"},
			expectCode: http.StatusUnprocessableEntity,
			expectMsg:  "Validation failed",
		},
	}
	for _, tc := range errCases {
		s.Run("failure: "+tc.name, func() {
			s.usecase.EXPECT().Submit(gomock.Any(), testClientID).Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

// ================================================================================
// TestDiscard
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestDiscard() {
	s.Run("success: returns 204", func() {
		s.usecase.EXPECT().Discard(gomock.Any(), testClientID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/checkout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("failure: in flight returns 409", func() {
		s.usecase.EXPECT().Discard(gomock.Any(), testClientID).Return(checkout.ErrSubmissionInFlight).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/checkout", nil, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

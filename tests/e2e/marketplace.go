//go:build e2e

package e2e

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"booking-checkout/internal/domain/booking"
	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/promotion"
	"booking-checkout/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FakeMarketplace stands in for the marketplace REST backend and records what the
// service sent to it.
type FakeMarketplace struct {
	server *httptest.Server

	mu              sync.Mutex
	services        []catalog.Service
	providers       []catalog.Provider
	promotions      map[string]promotion.Application
	failCreate      bool
	bookings        []booking.Request
	idempotencyKeys []string
	usage           map[string]int
	authHeaders     []string
}

func NewFakeMarketplace(t *testing.T) *FakeMarketplace {
	f := &FakeMarketplace{}
	f.Reset()

	r := gin.New()
	r.GET("/services", f.listServices)
	r.GET("/providers", f.listProviders)
	r.POST("/promotions/validate", f.validatePromo)
	r.POST("/promotions/:id/usage", f.incrementUsage)
	r.POST("/bookings", f.createBooking)

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *FakeMarketplace) URL() string {
	return f.server.URL
}

func (f *FakeMarketplace) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := builder.NewCheckoutBuilder()
	f.services = b.BuildServices()
	f.providers = b.BuildProviders()
	f.promotions = map[string]promotion.Application{
		"SPRING": {ID: "promo-spring", PromoCode: "SPRING", DiscountType: promotion.DiscountPercentage, DiscountValue: 10},
		"TENOFF": {ID: "promo-tenoff", PromoCode: "TENOFF", DiscountType: promotion.DiscountFixed, DiscountValue: 10},
	}
	f.failCreate = false
	f.bookings = nil
	f.idempotencyKeys = nil
	f.usage = map[string]int{}
	f.authHeaders = nil
}

func (f *FakeMarketplace) FailCreate(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCreate = fail
}

func (f *FakeMarketplace) Bookings() []booking.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]booking.Request(nil), f.bookings...)
}

func (f *FakeMarketplace) IdempotencyKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.idempotencyKeys...)
}

func (f *FakeMarketplace) Usage(promotionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usage[promotionID]
}

func (f *FakeMarketplace) AuthHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.authHeaders...)
}

func (f *FakeMarketplace) listServices(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authHeaders = append(f.authHeaders, c.GetHeader("Authorization"))
	c.JSON(http.StatusOK, f.services)
}

func (f *FakeMarketplace) listProviders(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.providers)
}

func (f *FakeMarketplace) validatePromo(c *gin.Context) {
	var req struct {
		Code        string `json:"code"`
		ProviderID  string `json:"providerId"`
		ServiceName string `json:"serviceName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	promo, ok := f.promotions[req.Code]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Promo code " + req.Code + " does not exist"}})
		return
	}
	c.JSON(http.StatusOK, promo)
}

func (f *FakeMarketplace) incrementUsage(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usage[c.Param("id")]++
	c.Status(http.StatusNoContent)
}

func (f *FakeMarketplace) createBooking(c *gin.Context) {
	var req booking.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.idempotencyKeys = append(f.idempotencyKeys, c.GetHeader("Idempotency-Key"))
	if f.failCreate {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "booking service is down"})
		return
	}
	f.bookings = append(f.bookings, req)
	c.JSON(http.StatusCreated, booking.Booking{ID: "bk-" + uuid.NewString(), Status: req.Status})
}

//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"booking-checkout/internal/handler/httperr"
	"booking-checkout/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		handler    gin.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name: "public error meta is rendered",
			handler: func(c *gin.Context) {
				resp := httperr.Response{Status: http.StatusConflict}
				resp.Error.Message = "busy"
				_ = c.Error(&gin.Error{Err: errors.New("busy"), Type: gin.ErrorTypePublic, Meta: resp})
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":{"message":"busy"}}`,
		},
		{
			name:       "private error becomes 500",
			handler:    func(c *gin.Context) { _ = c.Error(errors.New("boom")) },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":{"message":"Internal server error"}}`,
		},
		{
			name:       "written response is left alone",
			handler:    func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}); _ = c.Error(errors.New("late")) },
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
		{
			name:       "panic is recovered",
			handler:    func(c *gin.Context) { panic("kaboom") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":{"message":"Internal server error"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
			r.GET("/x", tt.handler)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

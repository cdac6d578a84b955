//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"booking-checkout/internal/pkg/config"
	"booking-checkout/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, clientID string) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret).GenerateToken(clientID, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, clientID string) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret).GenerateToken(clientID, -time.Minute)
	require.NoError(t, err)
	return token
}

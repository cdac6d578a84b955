package middleware

import (
	"log/slog"
	"net/http"

	"booking-checkout/internal/pkg/bearer"
	"booking-checkout/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// TokenValidator verifies an access token issued by the marketplace identity provider.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxClientIDKey  = "client_id"
	ctxJWTClaimsKey = "jwt_claims"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth accepts only "Authorization: Bearer <token>". The token is kept on the
// request context so marketplace calls are made on the client's behalf.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer.Parse(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxClientIDKey, claims.Subject)
		c.Set(ctxJWTClaimsKey, map[string]any{
			"client_id": claims.Subject,
			"email":     claims.Email,
		})
		c.Request = c.Request.WithContext(bearer.WithToken(c.Request.Context(), token))
		c.Next()
	}
}

// GetClientID returns the authenticated client id; it scopes the client's draft.
func GetClientID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxClientIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

package marketplace

import (
	"fmt"
	"net/http"

	"booking-checkout/internal/infra"
)

// APIError is a non-2xx answer from the marketplace backend.
type APIError struct {
	StatusCode int
	// Message is the server-supplied explanation, safe to show to the client.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("marketplace responded %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("marketplace responded %d", e.StatusCode)
}

// UserMessage lets callers outside this package surface the server's explanation.
func (e *APIError) UserMessage() string {
	return e.Message
}

func kindForStatus(status int) infra.RepositoryErrorKind {
	switch {
	case status == http.StatusNotFound:
		return infra.KindNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return infra.KindUnauthorized
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return infra.KindTimeout
	case status >= 500:
		return infra.KindUnavailable
	default:
		return infra.KindRejected
	}
}

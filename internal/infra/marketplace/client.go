package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"booking-checkout/internal/domain/booking"
	"booking-checkout/internal/domain/catalog"
	"booking-checkout/internal/domain/promotion"
	"booking-checkout/internal/infra"
	"booking-checkout/internal/pkg/bearer"
)

const (
	DefaultTimeout = 15 * time.Second

	idempotencyHeader = "Idempotency-Key"
	maxErrorBody      = 64 << 10
)

// Client talks to the marketplace REST backend that owns services, providers, promotions
// and bookings. It forwards the bearer token found in the request context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) ListServices(ctx context.Context) ([]catalog.Service, error) {
	var services []catalog.Service
	if err := c.do(ctx, http.MethodGet, "/services", nil, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) ListProviders(ctx context.Context) ([]catalog.Provider, error) {
	var providers []catalog.Provider
	if err := c.do(ctx, http.MethodGet, "/providers", nil, nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (c *Client) ValidatePromoCode(ctx context.Context, code, providerID, serviceName string) (*promotion.Application, error) {
	body := validatePromoRequest{Code: code, ProviderID: providerID, ServiceName: serviceName}

	var promo promotion.Application
	if err := c.do(ctx, http.MethodPost, "/promotions/validate", body, nil, &promo); err != nil {
		return nil, err
	}
	if err := promo.Validate(); err != nil {
		return nil, infra.WrapRepoErr("invalid promotion in response", err, infra.KindDecode)
	}
	if promo.PromoCode == "" {
		promo.PromoCode = code
	}
	return &promo, nil
}

func (c *Client) IncrementPromotionUsage(ctx context.Context, promotionID string) error {
	return c.do(ctx, http.MethodPost, "/promotions/"+url.PathEscape(promotionID)+"/usage", nil, nil, nil)
}

func (c *Client) CreateBooking(ctx context.Context, req booking.Request) (*booking.Booking, error) {
	var headers http.Header
	if req.IdempotencyKey != "" {
		headers = http.Header{idempotencyHeader: []string{req.IdempotencyKey}}
	}

	var created booking.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, headers, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, infra.WrapRepoErr("create booking response has no id", nil, infra.KindDecode)
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, headers http.Header, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return infra.WrapRepoErr("failed to encode request", err, infra.KindDecode)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return infra.WrapRepoErr("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := bearer.FromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return infra.WrapRepoErr(method+" "+path+" failed", err, transportKind(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.logger.WarnContext(ctx, "Marketplace request rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message),
		)
		return infra.WrapRepoErr(method+" "+path, apiErr, kindForStatus(resp.StatusCode))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapRepoErr("failed to decode "+path+" response", err, infra.KindDecode)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return ""
	}
	return strings.TrimSpace(eb.text())
}

func transportKind(err error) infra.RepositoryErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return infra.KindTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return infra.KindTimeout
	}
	return infra.KindUnavailable
}

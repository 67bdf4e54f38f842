// Package gateway wraps the NOWPayments-style crypto payment API: payment
// creation, status lookups, rate estimation and IPN signature verification.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"context"

	"github.com/shopspring/decimal"
	"github.com/vrudenko/cryptovest/pkg/clients"
	"go.uber.org/zap"
)

// Provider payment statuses. Everything in finalStatuses is immutable
// upstream; the local mapping lives in depositservice.
const (
	StatusWaiting       = "waiting"
	StatusConfirming    = "confirming"
	StatusConfirmed     = "confirmed"
	StatusSending       = "sending"
	StatusPartiallyPaid = "partially_paid"
	StatusFinished      = "finished"
	StatusFailed        = "failed"
	StatusRefunded      = "refunded"
	StatusExpired       = "expired"
	StatusCancelled     = "cancelled"
)

var finalStatuses = map[string]struct{}{
	StatusFinished:  {},
	StatusFailed:    {},
	StatusRefunded:  {},
	StatusExpired:   {},
	StatusCancelled: {},
}

// IsFinalStatus reports whether the provider will never change this status.
func IsFinalStatus(status string) bool {
	_, ok := finalStatuses[status]
	return ok
}

var (
	ErrNotConfigured       = errors.New("payment gateway is not configured")
	ErrRateLimited         = errors.New("payment gateway rate limit exceeded")
	ErrAmountTooSmall      = errors.New("amount below gateway minimum")
	ErrAmountTooLarge      = errors.New("amount above gateway maximum")
	ErrUnsupportedCurrency = errors.New("unsupported cryptocurrency")
	ErrUnreachable         = errors.New("payment gateway unreachable")
)

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway api error: %s (status %d)", e.Message, e.StatusCode)
}

type Config struct {
	BaseURL           string
	APIKey            string
	IPNSecret         string
	IPNCallbackURL    string
	MinAmount         decimal.Decimal
	MaxAmount         decimal.Decimal
	SupportedNetworks []string
}

type Client struct {
	cfg       Config
	client    clients.HTTPClientI
	limiter   *windowLimiter
	cache     *ttlCache
	supported map[string]struct{}
}

const (
	rateLimitRequests = 10
	rateLimitWindow   = time.Minute

	finalStatusTTL   = 24 * time.Hour
	pendingStatusTTL = 5 * time.Minute
	estimateTTL      = 5 * time.Minute
	currenciesTTL    = time.Hour
)

func NewClient(cfg Config, client clients.HTTPClientI) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	supported := make(map[string]struct{}, len(cfg.SupportedNetworks))
	for _, n := range cfg.SupportedNetworks {
		supported[n] = struct{}{}
	}

	return &Client{
		cfg:       cfg,
		client:    client,
		limiter:   newWindowLimiter(rateLimitRequests, rateLimitWindow),
		cache:     newTTLCache(),
		supported: supported,
	}, nil
}

// Payment is the subset of the create-payment response the platform uses.
type Payment struct {
	PaymentID     string          `json:"payment_id"`
	PayAddress    string          `json:"pay_address"`
	PayAmount     decimal.Decimal `json:"pay_amount"`
	PayCurrency   string          `json:"pay_currency"`
	PaymentStatus string          `json:"payment_status"`
}

type StatusSnapshot struct {
	PaymentStatus string          `json:"payment_status"`
	PayAddress    string          `json:"pay_address"`
	PayAmount     decimal.Decimal `json:"pay_amount"`
	ActuallyPaid  decimal.Decimal `json:"actually_paid"`
}

type Estimate struct {
	EstimatedAmount decimal.Decimal `json:"estimated_amount"`
	CurrencyFrom    string          `json:"currency_from"`
	CurrencyTo      string          `json:"currency_to"`
}

func (c *Client) ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThan(c.cfg.MinAmount) {
		return ErrAmountTooSmall
	}
	if amount.GreaterThan(c.cfg.MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

func (c *Client) ValidateCurrency(currency string) error {
	if _, ok := c.supported[currency]; !ok {
		return ErrUnsupportedCurrency
	}
	return nil
}

// CreatePayment registers a payment intent with the gateway. It writes no
// local state; the caller persists the deposit only after a payment id is
// returned.
func (c *Client) CreatePayment(ctx context.Context, amount decimal.Decimal, currencyFrom, currencyTo string) (*Payment, error) {
	if err := c.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := c.ValidateCurrency(currencyTo); err != nil {
		return nil, err
	}

	body := map[string]any{
		"price_amount":       amount,
		"price_currency":     currencyFrom,
		"pay_currency":       currencyTo,
		"ipn_callback_url":   c.cfg.IPNCallbackURL,
		"order_description":  fmt.Sprintf("Deposit of %s %s", amount.StringFixed(2), currencyFrom),
		"is_fee_paid_by_user": true,
	}

	raw, err := c.request(ctx, http.MethodPost, "payment", nil, body)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(raw, &payment); err != nil {
		return nil, fmt.Errorf("can't parse create payment response: %w", err)
	}
	if payment.PaymentID == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "missing payment_id in response"}
	}

	zap.L().Info("payment created",
		zap.String("paymentID", payment.PaymentID),
		zap.String("payCurrency", payment.PayCurrency),
	)
	return &payment, nil
}

// GetPaymentStatus returns the provider's view of a payment. Final statuses
// are cached long, pending ones briefly; a stale cached snapshot is served
// when the gateway is unreachable.
func (c *Client) GetPaymentStatus(ctx context.Context, paymentID string) (*StatusSnapshot, error) {
	cacheKey := "payment:" + paymentID
	if v, ok := c.cache.Get(cacheKey); ok {
		snapshot := v.(*StatusSnapshot)
		if IsFinalStatus(snapshot.PaymentStatus) {
			return snapshot, nil
		}
	}

	raw, err := c.request(ctx, http.MethodGet, "payment/"+paymentID, nil, nil)
	if err != nil {
		if v, ok := c.cache.Get(cacheKey); ok {
			zap.L().Warn("gateway status lookup failed, returning cached snapshot",
				zap.String("paymentID", paymentID), zap.Error(err))
			return v.(*StatusSnapshot), nil
		}
		return nil, err
	}

	var snapshot StatusSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("can't parse payment status response: %w", err)
	}

	ttl := pendingStatusTTL
	if IsFinalStatus(snapshot.PaymentStatus) {
		ttl = finalStatusTTL
	}
	c.cache.Set(cacheKey, &snapshot, ttl)

	return &snapshot, nil
}

// EstimateRate converts a fiat amount into the expected crypto amount.
func (c *Client) EstimateRate(ctx context.Context, amount decimal.Decimal, currencyFrom, currencyTo string) (*Estimate, error) {
	if err := c.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := c.ValidateCurrency(currencyTo); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("estimate:%s:%s:%s", currencyFrom, currencyTo, amount.String())
	if c.cache.Fresh(cacheKey) {
		if v, ok := c.cache.Get(cacheKey); ok {
			return v.(*Estimate), nil
		}
	}

	params := url.Values{}
	params.Set("amount", amount.String())
	params.Set("currency_from", currencyFrom)
	params.Set("currency_to", currencyTo)

	raw, err := c.request(ctx, http.MethodGet, "estimate", params, nil)
	if err != nil {
		if v, ok := c.cache.Get(cacheKey); ok {
			zap.L().Warn("gateway estimate failed, returning cached rate", zap.Error(err))
			return v.(*Estimate), nil
		}
		return nil, err
	}

	var estimate Estimate
	if err := json.Unmarshal(raw, &estimate); err != nil {
		return nil, fmt.Errorf("can't parse estimate response: %w", err)
	}
	c.cache.Set(cacheKey, &estimate, estimateTTL)

	return &estimate, nil
}

// Currencies returns the full currency list the provider supports.
func (c *Client) Currencies(ctx context.Context) ([]string, error) {
	const cacheKey = "currencies"
	if c.cache.Fresh(cacheKey) {
		if v, ok := c.cache.Get(cacheKey); ok {
			return v.([]string), nil
		}
	}

	raw, err := c.request(ctx, http.MethodGet, "currencies", nil, nil)
	if err != nil {
		if v, ok := c.cache.Get(cacheKey); ok {
			return v.([]string), nil
		}
		return nil, err
	}

	var response struct {
		Currencies []string `json:"currencies"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("can't parse currencies response: %w", err)
	}
	c.cache.Set(cacheKey, response.Currencies, currenciesTTL)

	return response.Currencies, nil
}

// SupportedNetworks returns the configured subset offered to users.
func (c *Client) SupportedNetworks() []string {
	return c.cfg.SupportedNetworks
}

func (c *Client) request(ctx context.Context, method, endpoint string, params url.Values, body any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	reqURL := c.cfg.BaseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	headers := http.Header{}
	headers.Set("x-api-key", c.cfg.APIKey)
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	var (
		statusCode int
		respBody   []byte
		err        error
	)
	switch method {
	case http.MethodGet:
		statusCode, respBody, _, err = c.client.Get(reqURL, headers)
	case http.MethodPost:
		var payload []byte
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("can't encode request body: %w", err)
		}
		statusCode, respBody, _, err = c.client.Post(reqURL, headers, payload)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = "unknown API error"
		}
		zap.L().Error("gateway returned error",
			zap.Int("status", statusCode),
			zap.String("endpoint", endpoint),
			zap.String("message", apiErr.Message),
		)
		return nil, &APIError{StatusCode: statusCode, Message: apiErr.Message}
	}

	return respBody, nil
}

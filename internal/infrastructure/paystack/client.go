package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"legalease.backend/internal/domain/entities"
	domainerrors "legalease.backend/internal/domain/errors"
)

const (
	DefaultBaseURL = "https://api.paystack.co"
	defaultTimeout = 15 * time.Second
)

// HTTPDoer is satisfied by *http.Client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransactionRequest is a transaction initialization; Amount is in kobo
type TransactionRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Reference   string                 `json:"reference"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
}

// Client talks to the Paystack transaction API
type Client struct {
	baseURL   string
	secretKey string
	http      HTTPDoer
}

// NewClient creates a Paystack client. An empty baseURL uses the live API.
func NewClient(baseURL, secretKey string) *Client {
	return NewClientWithHTTP(baseURL, secretKey, &http.Client{Timeout: defaultTimeout})
}

func NewClientWithHTTP(baseURL, secretKey string, doer HTTPDoer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      doer,
	}
}

// InitializeTransaction starts a hosted checkout
func (c *Client) InitializeTransaction(ctx context.Context, req TransactionRequest) (*entities.PaymentInitialization, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode paystack request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	return &entities.PaymentInitialization{
		AuthorizationURL: data.Get("authorization_url").String(),
		AccessCode:       data.Get("access_code").String(),
		Reference:        data.Get("reference").String(),
	}, nil
}

// VerifyTransaction fetches the gateway view of a transaction.
// Amount is converted back from kobo.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*entities.PaymentVerification, error) {
	body, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	v := &entities.PaymentVerification{
		Reference:       data.Get("reference").String(),
		Status:          data.Get("status").String(),
		Amount:          data.Get("amount").Int() / 100,
		Currency:        data.Get("currency").String(),
		GatewayResponse: data.Get("gateway_response").String(),
		CustomerEmail:   data.Get("customer.email").String(),
	}
	if paidAt := data.Get("paid_at").String(); paidAt != "" {
		if t, err := time.Parse(time.RFC3339, paidAt); err == nil {
			v.PaidAt = t
		}
	}
	return v, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domainerrors.ServiceUnavailable("Payment service unavailable", fmt.Errorf("%w: %v", domainerrors.ErrUpstreamUnavailable, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.ServiceUnavailable("Payment service unavailable", fmt.Errorf("%w: %v", domainerrors.ErrUpstreamUnavailable, err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	message := gjson.GetBytes(body, "message").String()
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		if message == "" {
			message = "Payment request rejected"
		}
		return nil, domainerrors.BadRequest(message)
	}
	if message == "" {
		message = "Payment gateway error"
	}
	return nil, domainerrors.BadGateway(message, fmt.Errorf("%w: status %d", domainerrors.ErrPaymentGateway, resp.StatusCode))
}

// IsGatewayError reports whether err came from the gateway rather than local code
func IsGatewayError(err error) bool {
	return errors.Is(err, domainerrors.ErrPaymentGateway) || errors.Is(err, domainerrors.ErrUpstreamUnavailable)
}

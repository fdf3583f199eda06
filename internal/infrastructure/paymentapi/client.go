// Package paymentapi talks to the remote payment service over HTTP.
package paymentapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/metrics"
)

const (
	DefaultBaseURL = "http://localhost:8080/api/payments"
	defaultTimeout = 10 * time.Second

	// error bodies larger than this are not worth decoding
	maxErrorBody = 64 << 10
)

const (
	opCreate = "create"
	opStatus = "status"
	opList   = "list"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.PaymentGateway.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg Config, httpClient *http.Client, log zerolog.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: base, timeout: timeout, httpClient: httpClient, log: log}
}

// CreateOrder posts a new order to {base}/order.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Payment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	var p domain.Payment
	if err := c.do(ctx, opCreate, http.MethodPost, c.baseURL+"/order", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetStatus fetches {base}/{id}/status.
func (c *Client) GetStatus(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var p domain.Payment
	endpoint := c.baseURL + "/" + url.PathEscape(paymentID) + "/status"
	if err := c.do(ctx, opStatus, http.MethodGet, endpoint, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List fetches every payment from {base}.
func (c *Client) List(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	if err := c.do(ctx, opList, http.MethodGet, c.baseURL, nil, &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.GatewayRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metrics.GatewayRequestsTotal.WithLabelValues(op, outcome(err)).Inc()
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("operation", op).Str("request_id", requestID).Msg("payment service unreachable")
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("operation", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("payment service responded")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.ServiceError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage prefers the body's "message" field and falls back to the
// status text when the body is empty or not JSON.
func errorMessage(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if len(b) > 0 && json.Unmarshal(b, &eb) == nil && eb.Message != "" {
		return eb.Message
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "status " + strconv.Itoa(resp.StatusCode)
}

func outcome(err error) string {
	switch err.(type) {
	case nil:
		return "ok"
	case *domain.ServiceError:
		return "service_error"
	default:
		return "network_error"
	}
}

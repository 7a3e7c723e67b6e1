package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/infrastructure/metrics"
)

// request is the proxy wire format: the company reference selects the
// tenant, the profile selects which credential/database the proxy
// targets, and the payload is always a literal SQL text.
type request struct {
	CompanyRef string `json:"company_ref"`
	Profile    string `json:"profile"`
	Query      string `json:"query"`
}

// Config holds proxy connection settings.
type Config struct {
	Endpoint    string
	CompanyRef  string
	Profile     string
	Timeout     time.Duration
	MaxAttempts int
}

// Client executes queries against the SQL-proxy endpoint with bounded
// retry. Transport failures and transient statuses are retried up to
// MaxAttempts; application errors in the response body are terminal.
type Client struct {
	httpClient *http.Client
	cfg        Config
	retrier    *Retrier
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a proxy client. metrics may be nil.
func NewClient(cfg Config, logger zerolog.Logger, m *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		retrier:    NewRetrier(cfg.MaxAttempts, logger),
		logger:     logger,
		metrics:    m,
	}
}

// Execute runs one query and returns its normalized rows. Each attempt
// is bounded by the configured timeout; exceeding it counts as a
// transient failure eligible for retry.
func (c *Client) Execute(ctx context.Context, queryText string) ([]domain.Row, error) {
	start := time.Now()

	var rows []domain.Row
	err := c.retrier.Do(ctx, func() error {
		var attemptErr error
		rows, attemptErr = c.attempt(ctx, queryText)
		if attemptErr != nil && Retryable(attemptErr) && c.metrics != nil {
			c.metrics.GatewayRetries.Inc()
		}
		return attemptErr
	})

	if c.metrics != nil {
		c.metrics.GatewayDuration.Observe(time.Since(start).Seconds())
		c.metrics.GatewayRequests.WithLabelValues(outcomeLabel(err)).Inc()

		var normErr *NormalizeError
		if errors.As(err, &normErr) {
			c.metrics.NormalizeErrors.Inc()
		}
	}

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) attempt(ctx context.Context, queryText string) ([]domain.Row, error) {
	body, err := json.Marshal(request{
		CompanyRef: c.cfg.CompanyRef,
		Profile:    c.cfg.Profile,
		Query:      queryText,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 512)}
	}

	// A 200 can still carry an application-level error envelope.
	return Normalize(respBody)
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}

	var (
		transport *TransportError
		status    *StatusError
		app       *AppError
		norm      *NormalizeError
	)
	switch {
	case errors.As(err, &transport):
		return "transport_error"
	case errors.As(err, &status):
		return "status_error"
	case errors.As(err, &app):
		return "app_error"
	case errors.As(err, &norm):
		return "normalize_error"
	default:
		return "error"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

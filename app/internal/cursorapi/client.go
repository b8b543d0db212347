package cursorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
)

const (
	DefaultBaseURL = "https://cursor.com"
	RequestTimeout = 10 * time.Second

	SessionCookieName = "WorkosCursorSessionToken"
	UserAgent         = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	usagePath     = "/api/usage"
	invoicePath   = "/api/dashboard/get-monthly-invoice"
	hardLimitPath = "/api/dashboard/get-hard-limit"
	billingDayLag = 3
	maxBodyBytes  = 4 << 20
)

// Client talks to the usage dashboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	logger     *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: RequestTimeout},
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BillingPeriod returns the invoice month for now. Before the 3rd the
// previous month's invoice is still being finalised, so it is used instead.
func BillingPeriod(now time.Time) (month, year int) {
	month, year = int(now.Month()), now.Year()
	if now.Day() < billingDayLag {
		month--
		if month == 0 {
			month = 12
			year--
		}
	}
	return month, year
}

type invoiceRequest struct {
	Month              int  `json:"month"`
	Year               int  `json:"year"`
	IncludeUsageEvents bool `json:"includeUsageEvents"`
}

// FetchUsageStats performs the usage, invoice and hard-limit calls in that
// order. A failed usage call returns entities.ErrUnavailable; failed invoice
// or limit calls leave those fields nil.
func (c *Client) FetchUsageStats(ctx context.Context, token entities.SessionToken) (*entities.UsageBundle, error) {
	q := url.Values{}
	q.Set("user", token.UserID())

	var usage entities.UsageSnapshot
	if err := c.do(ctx, http.MethodGet, usagePath+"?"+q.Encode(), token, nil, &usage); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrUnavailable, err)
	}
	for _, issue := range usage.DecodeIssues {
		c.logger.Warn("usage field decoded with default", zap.Error(issue))
	}
	if len(usage.Models) == 0 && usage.StartOfMonth == "" {
		c.logger.Error("empty usage payload")
		return nil, fmt.Errorf("%w: empty usage payload", entities.ErrUnavailable)
	}

	month, year := BillingPeriod(c.now())
	bundle := &entities.UsageBundle{Usage: usage, Month: month, Year: year}

	var invoice entities.InvoiceSnapshot
	body := invoiceRequest{Month: month, Year: year}
	if err := c.do(ctx, http.MethodPost, invoicePath, token, body, &invoice); err == nil {
		bundle.Invoice = &invoice
	}

	var limits entities.LimitSnapshot
	if err := c.do(ctx, http.MethodPost, hardLimitPath, token, struct{}{}, &limits); err == nil {
		bundle.Limits = &limits
	}

	return bundle, nil
}

// do sends one request and decodes a JSON response into out. Errors are
// logged here so callers can degrade silently.
func (c *Client) do(ctx context.Context, method, path string, token entities.SessionToken, body, out any) error {
	targetURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, reader)
	if err != nil {
		c.logger.Error("failed to create request", zap.String("url", targetURL), zap.Error(err))
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cookie", SessionCookieName+"="+token.String())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("http request failed", zap.String("method", method), zap.String("url", targetURL), zap.Error(err))
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("unexpected status", zap.String("url", targetURL), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("request %s: status %d", path, resp.StatusCode)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Error("failed to read response", zap.String("url", targetURL), zap.Error(err))
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("invalid json response", zap.String("url", targetURL), zap.Error(err))
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

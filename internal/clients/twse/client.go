// Package twse provides a client for the TWSE daily quotes report
package twse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/hchs200771/100-up-and-down-stocks/internal/common"
	"github.com/hchs200771/100-up-and-down-stocks/internal/interfaces"
	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

const (
	DefaultBaseURL   = "https://www.twse.com.tw"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5 // requests per second

	quotesPath = "/exchangeReport/MI_INDEX"
)

// Client implements the TWSEClient interface against the TWSE exchange report API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new TWSE client.
// No API key is required — this is a public endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetDailyQuotes retrieves the end-of-day all-quotes report for listed securities.
// "ALLBUT0999" excludes index rows so the report contains only tradable instruments.
func (c *Client) GetDailyQuotes(ctx context.Context) (*models.TWSEDailyResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("response", "json")
	query.Set("type", "ALLBUT0999")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, quotesPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", reqURL).Msg("TWSE daily quotes request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Dur("elapsed", elapsed).Msg("TWSE daily quotes request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("TWSE daily quotes non-OK response")
		return nil, fmt.Errorf("TWSE API error: status %d", resp.StatusCode)
	}

	var report models.TWSEDailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Info().Int("rows", len(report.Data)).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("TWSE daily quotes call")

	return &report, nil
}

// Ensure Client implements TWSEClient
var _ interfaces.TWSEClient = (*Client)(nil)

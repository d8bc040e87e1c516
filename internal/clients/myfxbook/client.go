// Package myfxbook provides a client for the Myfxbook API
package myfxbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/fxlens/fxlens/internal/common"
	"github.com/fxlens/fxlens/internal/interfaces"
	"github.com/fxlens/fxlens/internal/models"
)

const (
	DefaultBaseURL   = "https://www.myfxbook.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the ProviderClient interface
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

// WithTimeout sets the HTTP timeout. A timed-out call surfaces as a generic
// upstream failure, never as session expiry.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Myfxbook client
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

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Myfxbook API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// envelope is the error wrapper the upstream includes in every response body.
type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// call performs a rate-limited GET request against /api/<endpoint> and
// returns the raw body after checking the error envelope. Session-expiry
// signals (HTTP 401 or known message markers) are returned as
// *common.SessionExpiredError so the session layer can recover.
func (c *Client) call(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("endpoint", endpoint).Msg("Myfxbook API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &common.SessionExpiredError{Endpoint: endpoint, Message: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   endpoint,
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	if env.Error {
		if isSessionExpiredMessage(env.Message) {
			return nil, &common.SessionExpiredError{Endpoint: endpoint, Message: env.Message}
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Endpoint:   endpoint,
		}
	}

	return body, nil
}

// Login authenticates with credentials and returns a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	params := url.Values{}
	params.Set("email", email)
	params.Set("password", password)

	body, err := c.call(ctx, "login.json", params)
	if err != nil {
		// Any upstream rejection of credentials is an authentication
		// failure, not something a retry can fix.
		var apiErr *APIError
		if ok := asAPIError(err, &apiErr); ok {
			return "", &common.AuthenticationError{Message: apiErr.Message}
		}
		if common.IsSessionExpired(err) {
			return "", &common.AuthenticationError{Message: err.Error()}
		}
		return "", err
	}

	var resp struct {
		Session string `json:"session"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.Session == "" {
		return "", &common.AuthenticationError{Message: "login returned an empty session"}
	}

	return resp.Session, nil
}

// Logout invalidates a session token upstream.
func (c *Client) Logout(ctx context.Context, session string) error {
	params := url.Values{}
	params.Set("session", session)

	_, err := c.call(ctx, "logout.json", params)
	return err
}

// GetMyAccounts retrieves all accounts visible to the session.
func (c *Client) GetMyAccounts(ctx context.Context, session string) ([]*models.Account, error) {
	params := url.Values{}
	params.Set("session", session)

	body, err := c.call(ctx, "get-my-accounts.json", params)
	if err != nil {
		return nil, err
	}
	return normalizeAccounts(body)
}

// GetAccountHistory retrieves the closed-trade history for an account.
func (c *Client) GetAccountHistory(ctx context.Context, session, accountID string) ([]*models.Trade, error) {
	params := url.Values{}
	params.Set("session", session)
	params.Set("id", accountID)

	body, err := c.call(ctx, "get-history.json", params)
	if err != nil {
		return nil, err
	}
	return normalizeHistory(body)
}

// GetDataDaily retrieves per-day records for an account over a date range
// (dates are YYYY-MM-DD).
func (c *Client) GetDataDaily(ctx context.Context, session, accountID, start, end string) ([]*models.DailyRecord, error) {
	params := url.Values{}
	params.Set("session", session)
	params.Set("id", accountID)
	params.Set("start", start)
	params.Set("end", end)

	body, err := c.call(ctx, "get-data-daily.json", params)
	if err != nil {
		return nil, err
	}
	return normalizeDaily(body)
}

// GetGain retrieves the gain percentage for an account over a date range.
func (c *Client) GetGain(ctx context.Context, session, accountID, start, end string) (float64, error) {
	params := url.Values{}
	params.Set("session", session)
	params.Set("id", accountID)
	params.Set("start", start)
	params.Set("end", end)

	body, err := c.call(ctx, "get-gain.json", params)
	if err != nil {
		return 0, err
	}
	return normalizeGain(body)
}

// Ensure Client implements ProviderClient
var _ interfaces.ProviderClient = (*Client)(nil)

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/diogo/tradebot/internal/errors"
	"github.com/diogo/tradebot/internal/models"
)

// ServiceInterface is the contract the TUI and commands depend on.
// Implementations never panic and never return raw errors from Ask:
// every failure is folded into the Outcome.
type ServiceInterface interface {
	Ask(ctx context.Context, req models.AskRequest) Outcome
	ListTrades(ctx context.Context) TradesResult
	BaseURL() string
	Close()
}

// httpDoer is the subset of tls_client.HttpClient the client uses
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the answering service over HTTP
type Client struct {
	httpClient httpDoer
	baseURL    string
	timeout    time.Duration
	logger     *log.Logger
	mu         sync.RWMutex
	closed     bool
}

// Ensure Client implements ServiceInterface
var _ ServiceInterface = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger enables request diagnostics
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the transport (used by tests)
func WithHTTPClient(doer httpDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// NewClient creates a new Client for the service rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	client := &Client{baseURL: baseURL}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		if client.timeout >= time.Second {
			options = append(options, tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the root URL of the answering service
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close marks the client closed; in-flight requests run to completion
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed reports whether Close was called
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// do executes one request and returns status and body.
// Failures to obtain a response come back as NetworkError or TimeoutError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (int, []byte, error) {
	if c.IsClosed() {
		return 0, nil, apierrors.NewNetworkError(path, errors.New("client is closed"))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("%s %s failed after %v: %v", method, path, time.Since(start), err)
		if ctx.Err() == context.DeadlineExceeded || apierrors.IsTimeoutError(err) {
			return 0, nil, apierrors.NewTimeoutError(fmt.Sprintf("%s %s", method, path))
		}
		return 0, nil, apierrors.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, apierrors.NewNetworkError(endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	c.logf("%s %s -> %d (%d bytes) in %v", method, path, resp.StatusCode, len(data), time.Since(start))
	return resp.StatusCode, data, nil
}

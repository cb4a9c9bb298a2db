// Package flush implements the flush driver for the dispatch queue: the
// component that owns timers and the network, periodically extracts
// ready-to-send batches per tier, and ships each batch as the body of one
// POST to the bound JSON API endpoint.
//
// FLUSH CYCLE:
// Every interval the driver checks whether the queue holds pending work
// and, when it does, walks the tiers in flush order. Mutable and Passive
// batches drain wholesale; the Immutable tier hands out one request at a
// time and the driver acknowledges its outcome - success or failure -
// before the queue offers the next, so the server never sees two
// mission-critical calls racing for the same session.
//
// The driver owns transport outcomes entirely: the queue never learns
// whether a batch was delivered, and failed batches are not retried
// (supersession and re-submission are host concerns).
package flush

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/anycommerce/storefront/internal/logging"
	"github.com/anycommerce/storefront/internal/version"
	"github.com/go-resty/resty/v2"
)

// restyLogger implements resty.Logger and routes logs through structured logging
type restyLogger struct{}

// Errorf routes error messages through structured logging.
func (restyLogger) Errorf(format string, v ...interface{}) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (restyLogger) Warnf(format string, v ...interface{}) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (restyLogger) Debugf(format string, v ...interface{}) {
	logging.Debug(format, v...)
}

// Client wraps the Resty HTTP client with storefront-specific
// functionality for delivering request batches: JSON headers, User-Agent
// versioning, structured request/response logging, and per-call timeouts.
//
// Deliberately carries no retry policy: a batch that fails transport is
// reported to the caller once and forgotten, matching the dispatch
// queue's fire-and-forget contract with its driver.
type Client struct {
	client   *resty.Client
	endpoint string
}

// NewClient creates an API client bound to a server address ("host:port")
// and the JSON API endpoint path batches are POSTed to.
func NewClient(apiAddr, endpoint string, timeout time.Duration) *Client {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s", apiAddr)

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(restyLogger{})

	// Configure client with timeouts and headers
	client.
		SetTimeout(timeout).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("storefrontctl/%s", version.StorefrontctlVersion))

	// Custom request logging using structured logging
	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	// Custom response logging using structured logging
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	// Custom error logging using structured logging
	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &Client{
		client:   client,
		endpoint: endpoint,
	}
}

// SendBatch delivers one extracted batch as a single POST to the bound
// endpoint and returns the per-request response documents, in batch
// order. The batch serializes as a JSON array of the flat request shape.
//
// Responses are opaque to the driver; interpretation belongs to the host
// via the driver's OnResponse hook.
func (c *Client) SendBatch(batch any) ([]json.RawMessage, error) {
	var responses []json.RawMessage

	resp, err := c.client.R().
		SetBody(batch).
		SetResult(&responses).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to send batch: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("batch rejected: %s: %s", resp.Status(), resp.String())
	}

	return responses, nil
}

// Health checks whether the API server is reachable and answering.
func (c *Client) Health() error {
	resp, err := c.client.R().Get("/health")
	if err != nil {
		return fmt.Errorf("failed to reach API server: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("API server unhealthy: %s", resp.Status())
	}
	return nil
}

package fmi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/grib-downloader/internal/forecast"
	"github.com/sony/gobreaker"
)

// DefaultBaseURL is the FMI open data endpoint; the API key is appended as a path segment.
const DefaultBaseURL = "http://data.fmi.fi/fmi-apikey"

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// Client talks to the FMI open data service. It implements both
// forecast.TimeResolver and forecast.Downloader.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a new Client. An empty baseURL selects DefaultBaseURL.
func NewClient(client *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "fmi",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		circuit: cb,
	}
}

// endpoint builds <base>/<apikey>/<path>?<query>.
func (c *Client) endpoint(path string, values url.Values) string {
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, url.PathEscape(c.apiKey), path, values.Encode())
}

// doRequest executes a single GET through the circuit breaker. There are no
// retries: any failure is returned wrapped in forecast.ErrTransport. On
// success the caller owns the response body.
func (c *Client) doRequest(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w: %v", forecast.ErrTransport, errCircuitOpen, err)
		}
		return nil, fmt.Errorf("%w: %v", forecast.ErrTransport, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

package estimator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yildizm/HomeQuote/internal/logger"
)

// Client talks to the price estimation service
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	log     *logger.Logger
}

// New creates a client for the configured service
func New(config *Config, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "", "invalid configuration", err)
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "", "invalid base URL", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		log:     log.WithComponent("estimator"),
	}, nil
}

// Locations fetches the list of location names the service can price.
// A body without a locations field yields an empty list.
func (c *Client) Locations(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL.JoinPath(c.config.LocationsPath).String()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, endpoint, "failed to create request", err)
	}

	var body LocationsResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}

	locations := body.Locations
	if locations == nil {
		locations = []string{}
	}

	c.log.Debug("locations loaded",
		logger.Count(len(locations)),
		logger.Duration(time.Since(start)))

	return locations, nil
}

// Estimate posts the listing as form data and returns the scaled price
func (c *Client) Estimate(ctx context.Context, r Request) (*Estimate, error) {
	endpoint := c.baseURL.JoinPath(c.config.EstimatePath).String()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(r.Values().Encode()))
	if err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, endpoint, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body EstimateResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}

	if body.EstimatedPrice == nil {
		return nil, newError(ErrTypeMissingField, endpoint, "response has no estimated_price")
	}

	raw := *body.EstimatedPrice
	c.log.Debug("estimate received",
		logger.F("location", r.Location),
		logger.F("estimated_price", raw),
		logger.Duration(time.Since(start)))

	return &Estimate{Raw: raw, Price: raw * PriceScale}, nil
}

// do sends req and decodes a 2xx JSON body into out
func (c *Client) do(req *http.Request, out any) error {
	endpoint := req.URL.String()

	resp, err := c.client.Do(req)
	if err != nil {
		return newErrorWithCause(ErrTypeNetwork, endpoint, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newErrorWithCause(ErrTypeDecode, endpoint, "failed to decode response", err)
	}

	return nil
}

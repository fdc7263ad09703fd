// Package alert is a thin client for the voice-call provider. The gateway
// hands it a list of phone numbers and relays whatever the provider answers;
// dialing policy lives entirely on the provider side.
package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const alertsEndpoint = "/alerts"

var defaultTimeout = time.Second * 10

// Result is the provider-defined response to an alert request, passed
// through to the caller untouched.
type Result = json.RawMessage

// Client sends alert requests to the voice-call provider.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	logger  zerolog.Logger

	httpClient *http.Client
}

// Option is a callback for passing parameters to *Client
type Option func(*Client)

// WithURL sets the alert provider base URL
func WithURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithToken sets the bearer token sent on every alert request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the client logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates an alert provider Client
func New(opts ...Option) *Client {
	client := &Client{
		baseURL: "http://localhost:9001/",
		timeout: defaultTimeout,
		logger: zerolog.New(zerolog.NewConsoleWriter()).
			With().Timestamp().Str("service", "alert-client").Logger(),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Send asks the provider to ring every number in the list, in order.
func (c *Client) Send(ctx context.Context, phoneNumbers []string) (Result, error) {
	logger := c.logger.With().Str("action", "send_alert").Logger()

	endpoint, err := url.JoinPath(c.baseURL, alertsEndpoint)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	b, _ := json.Marshal(map[string]any{"phoneNumbers": phoneNumbers})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		logger.Error().Caller().Err(err).Send()
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Caller().Err(err).Msg("error sending alert")
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("status_code", res.StatusCode).Int("numbers", len(phoneNumbers)).Send()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		logger.Warn().Bytes("data", body).Msg("unexpected status code from alert provider")
		return nil, fmt.Errorf("alert provider returned status %d", res.StatusCode)
	}
	return Result(body), nil
}

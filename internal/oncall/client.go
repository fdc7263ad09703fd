package oncall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m7shapan/njson"
	"github.com/rs/zerolog"

	"github.com/lordvidex/oncall-gateway/internal/metrics"
	"github.com/lordvidex/oncall-gateway/internal/oncall/dto"
)

const (
	schedulesEndpoint = "/schedules"
	usersEndpoint     = "/users"
)

var defaultTimeout = time.Second * 10

// Client makes requests to the roster/contact provider. It is safe for
// concurrent use; the underlying http.Client is shared across requests.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  zerolog.Logger

	httpClient *http.Client
}

// Option is a callback for passing parameters to *Client
type Option func(*Client)

// WithURL sets the provider base URL
func WithURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIKey sets the key sent in the Authorization header on every call
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithLogger sets the client logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds every outbound provider call
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a roster provider Client
func New(opts ...Option) *Client {
	client := &Client{
		baseURL: "http://localhost:9000/",
		timeout: defaultTimeout,
		logger: zerolog.New(zerolog.NewConsoleWriter()).
			With().Timestamp().Str("service", "oncall-gateway").Logger(),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// SearchSchedules queries the schedule-search endpoint with name as the
// query term and returns all matches.
func (c *Client) SearchSchedules(ctx context.Context, name string) ([]dto.ScheduleDTO, error) {
	const op = "requesting schedule by name"
	body, err := c.get(ctx, op, []string{schedulesEndpoint}, url.Values{"query": {name}})
	if err != nil {
		return nil, &ProviderError{Op: op, Subject: name, Err: err}
	}
	var schedules []dto.ScheduleDTO
	if err = json.Unmarshal(body, &schedules); err != nil {
		return nil, &ProviderError{Op: op, Subject: name, Err: err}
	}
	return schedules, nil
}

// OnCallRecipients returns the flattened list of usernames currently on call
// for the schedule id, in roster order. May be empty.
func (c *Client) OnCallRecipients(ctx context.Context, scheduleID string) ([]string, error) {
	const op = "requesting on call person"
	body, err := c.get(ctx, op,
		[]string{schedulesEndpoint, scheduleID, "on-calls"}, url.Values{"flat": {"true"}})
	if err != nil {
		return nil, &ProviderError{Op: op, Subject: scheduleID, Err: err}
	}
	var result dto.OnCallRecipientsDTO
	if err = njson.Unmarshal(body, &result); err != nil {
		return nil, &ProviderError{Op: op, Subject: scheduleID, Err: err}
	}
	return result.Recipients, nil
}

// UserContacts fetches a user's contact methods.
func (c *Client) UserContacts(ctx context.Context, username string) (dto.UserContactsDTO, error) {
	const op = "requesting phone number"
	var result dto.UserContactsDTO
	body, err := c.get(ctx, op, []string{usersEndpoint, username}, url.Values{"expand": {"contact"}})
	if err != nil {
		return result, &ProviderError{Op: op, Subject: username, Err: err}
	}
	if err = njson.Unmarshal(body, &result); err != nil {
		return result, &ProviderError{Op: op, Subject: username, Err: err}
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, op string, path []string, query url.Values) ([]byte, error) {
	logger := c.logger.With().Str("action", op).Logger()

	endpoint, err := url.JoinPath(c.baseURL, path...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Error().Caller().Err(err).Send()
		return nil, err
	}
	req.URL.RawQuery = query.Encode()
	if c.apiKey != "" {
		req.Header.Set("Authorization", "GenieKey "+c.apiKey)
	}

	startTime := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderRequestErrors.WithLabelValues(op).Inc()
		logger.Error().Caller().Err(err).Msg("provider request failed")
		return nil, err
	}
	defer res.Body.Close()

	metrics.ProviderRequestDuration.WithLabelValues(op).Observe(time.Since(startTime).Seconds())
	logger.Debug().Int("status_code", res.StatusCode).Str("url", endpoint).Send()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		metrics.ProviderRequestErrors.WithLabelValues(op).Inc()
		logger.Warn().Int("status_code", res.StatusCode).Bytes("data", body).
			Msg("unexpected status code from provider")
		return nil, fmt.Errorf("provider returned status %d", res.StatusCode)
	}
	return body, nil
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every request unless a custom http.Client is
// supplied. No call is retried; timeouts surface as transport failures.
const DefaultTimeout = 30 * time.Second

// CredentialSource supplies the bearer credential for authenticated calls.
// An empty string means "no credential available" and the Authorization
// header is omitted (the login call relies on this).
type CredentialSource interface {
	Credential() string
}

// Request describes one API call. Query keys with empty values are omitted
// from the URL; Body, when non-nil, is serialized as JSON.
type Request struct {
	Method string
	Path   string
	Query  Query
	Body   any

	// NoAuth disables the Authorization header for this call.
	NoAuth bool
}

// Client issues JSON requests against the radar backend, attaching the
// bearer credential and normalizing every failure into ErrUnauthorized,
// an *APIError or a context error.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	limiter        *rate.Limiter
	onUnauthorized func()
	log            zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCredentialSource sets the source of the bearer credential.
func WithCredentialSource(cs CredentialSource) Option {
	return func(c *Client) {
		c.creds = cs
	}
}

// WithUnauthorizedHook registers a callback invoked on every 401 response,
// before ErrUnauthorized is returned. The session store uses it to force
// logout.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// WithRateLimit throttles outgoing requests.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client for the given base URL (e.g. "http://host/api/v1").
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req and decodes the JSON response into out when out is
// non-nil. A 204 or empty body leaves out untouched and returns nil.
// Cancellation of ctx rejects with the context's error, distinct from
// request failures.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	reqURL := c.baseURL + req.Path
	if encoded := req.Query.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("[Client.Do] marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("[Client.Do] create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.New().String())

	if !req.NoAuth && c.creds != nil {
		if token := c.creds.Credential(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Cancellation must reject distinctly from a failed request.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Error().Err(err).Str("method", method).Str("path", req.Path).Msg("request failed")
		return fmt.Errorf("[Client.Do] %s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if err := c.decode(resp, out); err != nil {
		if errors.Is(err, ErrNoContent) {
			return nil
		}
		return err
	}
	return nil
}

func (c *Client) decode(resp *http.Response, out any) error {
	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromBody(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return ErrNoContent
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("[Client.decode] read body: %w", err)
	}
	if len(payload) == 0 {
		return ErrNoContent
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("[Client.decode] unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) errorFromBody(resp *http.Response) error {
	var errBody struct {
		Message string `json:"message"`
	}
	payload, err := io.ReadAll(resp.Body)
	if err == nil && len(payload) > 0 {
		// Best effort: keep the generic message if the body isn't JSON.
		_ = json.Unmarshal(payload, &errBody)
	}
	return NewAPIError(resp.StatusCode, errBody.Message)
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/common"
	"github.com/dmitrijs2005/brokerdesk/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// TokenSource yields the bearer token for authenticated calls.
// *session.Store implements it.
type TokenSource interface {
	Token() string
}

// HTTPClient talks to the brokerage REST API.
type HTTPClient struct {
	baseURL        string
	tokens         TokenSource
	http           *http.Client
	limiter        *rate.Limiter
	timeout        time.Duration
	log            logging.Logger
	onUnauthorized func(ctx context.Context)
	newRequestID   func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithRateLimit bounds outbound requests; perSecond <= 0 disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *HTTPClient) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithTimeout sets a per-request deadline; zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithUnauthorizedHandler registers fn to run when an authenticated call is
// answered with 401 or 403.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// New builds an HTTPClient rooted at baseURL (scheme and host, optionally a
// path prefix).
func New(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:      strings.TrimRight(u.String(), "/"),
		tokens:       tokens,
		http:         &http.Client{},
		log:          logging.NewNop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request describes one API call. body is sent as JSON; raw is sent as is
// with contentType and wins over body.
type request struct {
	method      string
	path        string
	query       url.Values
	auth        bool
	body        any
	raw         []byte
	contentType string
	accept      string

	// forbiddenIsRefusal marks calls where a 403 means the role may not do
	// this, not that the session is dead.
	forbiddenIsRefusal bool
}

// do performs r and returns the raw response body of a 2xx answer.
func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	requestID := c.newRequestID()
	ctx = logging.ContextWithRequestID(ctx, requestID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var payload io.Reader
	contentType := r.contentType
	switch {
	case r.raw != nil:
		payload = bytes.NewReader(r.raw)
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		payload = bytes.NewReader(b)
		contentType = "application/json"
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, payload)
	if err != nil {
		return nil, err
	}
	if payload != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json, text/plain"
	}
	req.Header.Set("Accept", accept)
	req.Header.Set(common.RequestIDHeader, requestID)
	if r.auth {
		// An absent token is still sent; the server is the one to refuse it.
		token := ""
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Warn(ctx, "api call failed", "method", r.method, "path", r.path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api call",
		"method", r.method, "path", r.path, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
		refused := r.forbiddenIsRefusal && resp.StatusCode == http.StatusForbidden
		if r.auth && !refused && errors.Is(apiErr, ErrUnauthorized) && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, apiErr
	}
	return body, nil
}

// doJSON performs r and decodes a JSON body into out (when out is non-nil
// and the body is not empty).
func (c *HTTPClient) doJSON(ctx context.Context, r request, out any) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// doText performs r and returns a text body, unquoting a JSON string.
func (c *HTTPClient) doText(ctx context.Context, r request) (string, error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, `"`) {
		var s string
		if json.Unmarshal([]byte(text), &s) == nil {
			return s, nil
		}
	}
	return text, nil
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

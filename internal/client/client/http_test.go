package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource, opts ...Option) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, tokens, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", nil)
	require.Error(t, err)

	_, err = New("://bad", nil)
	require.Error(t, err)

	c, err := New("http://localhost:8080/", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}

func TestDo_AuthorizationHeader(t *testing.T) {
	tests := []struct {
		name   string
		tokens TokenSource
		auth   bool
		want   string
		sent   bool
	}{
		{"token attached", staticToken("abc"), true, "Bearer abc", true},
		{"empty token still sent", staticToken(""), true, "Bearer ", true},
		{"nil source still sent", nil, true, "Bearer ", true},
		{"public call has no header", staticToken("abc"), false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Servers trim trailing blanks from header values, so the header
			// is checked as it leaves the client.
			var got []string
			transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
				got = r.Header.Values(common.AuthorizationHeader)
				return &http.Response{
					StatusCode: http.StatusOK,
					Header:     http.Header{},
					Body:       io.NopCloser(strings.NewReader("")),
					Request:    r,
				}, nil
			})
			c, err := New("http://api.test", tt.tokens, WithHTTPClient(&http.Client{Transport: transport}))
			require.NoError(t, err)

			_, err = c.do(context.Background(), request{method: http.MethodGet, path: "/x", auth: tt.auth})
			require.NoError(t, err)

			if tt.sent {
				require.Len(t, got, 1)
				assert.Equal(t, tt.want, got[0])
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestDo_RequestIDAndBody(t *testing.T) {
	var gotID, gotType, gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(common.RequestIDHeader)
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}, nil)
	c.newRequestID = func() string { return "req-1" }

	_, err := c.do(context.Background(), request{method: http.MethodPost, path: "/x", body: map[string]int{"a": 1}})
	require.NoError(t, err)

	assert.Equal(t, "req-1", gotID)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"a":1}`, gotBody)
}

func TestDo_ErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"plain text", http.StatusBadRequest, "Email already registered", ErrBadRequest, "Email already registered"},
		{"json message", http.StatusNotFound, `{"message":"Policy not found"}`, ErrNotFound, "Policy not found"},
		{"json error", http.StatusBadRequest, `{"error":"bad input"}`, ErrBadRequest, "bad input"},
		{"json string", http.StatusBadRequest, `"Invalid PAN"`, ErrBadRequest, "Invalid PAN"},
		{"empty body", http.StatusInternalServerError, "", ErrUnavailable, ""},
		{"forbidden", http.StatusForbidden, "", ErrUnauthorized, ""},
		{"object without message", http.StatusBadRequest, `{"status":400}`, ErrBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			msg, ok := ServerMessage(err)
			assert.Equal(t, tt.message != "", ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestDo_UnauthorizedHook(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, staticToken("stale"), WithUnauthorizedHandler(func(context.Context) { calls.Add(1) }))

	_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x", auth: true})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())

	// public calls such as a failed login do not trigger it
	_, err = c.Login(context.Background(), models.RoleCustomer, "a@b.c", "secret1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url, nil)
	require.NoError(t, err)

	_, err = c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, ok := ServerMessage(err)
	assert.False(t, ok)
}

func TestDo_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, nil)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.do(ctx, request{method: http.MethodGet, path: "/slow"})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, nil, WithTimeout(20*time.Millisecond))
	t.Cleanup(func() { close(release) })

	_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/slow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithRateLimit(t *testing.T) {
	c, err := New("http://localhost", nil, WithRateLimit(0, 5))
	require.NoError(t, err)
	assert.Nil(t, c.limiter)

	c, err = New("http://localhost", nil, WithRateLimit(2, 0))
	require.NoError(t, err)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}

func TestDo_RateLimitHonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil, WithRateLimit(0.001, 1))

	_, err := c.do(context.Background(), request{method: http.MethodGet, path: "/x"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.do(ctx, request{method: http.MethodGet, path: "/x"})
	assert.Error(t, err)
}

func TestDoText_UnquotesJSONString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"User activated"`))
	}, nil)

	got, err := c.doText(context.Background(), request{method: http.MethodPost, path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, "User activated", got)
}

func TestErrorMessage_TruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", maxMessageLen-1) + "é tail"

	got := errorMessage([]byte(body))
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxMessageLen)
	assert.Equal(t, strings.Repeat("a", maxMessageLen-1), got)

	short := errorMessage([]byte("Policy déjà expirée"))
	assert.Equal(t, "Policy déjà expirée", short)
}

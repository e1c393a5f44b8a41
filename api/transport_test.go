package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/skillshare-client/api"
	"github.com/jrsteele09/skillshare-client/internal/testutil"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/jrsteele09/skillshare-client/tokenstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	return session.New(tokenstore.NewMemory(tokenstore.Config{}), session.WithLogger(zerolog.Nop()))
}

func statusServer(t *testing.T, status int, seen *http.Header) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.Header.Clone()
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func roundTrip(t *testing.T, rt http.RoundTripper, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestBearerTransport(t *testing.T) {
	var seen http.Header
	srv := statusServer(t, http.StatusOK, &seen)
	m := newManager(t)
	rt := api.BearerTransport(m)(http.DefaultTransport)

	roundTrip(t, rt, srv.URL)
	require.Empty(t, seen.Get("Authorization"))

	// attached as-is, even when it is not a usable session
	require.NoError(t, m.StoreToken(context.Background(), "not-a-jwt"))
	roundTrip(t, rt, srv.URL)
	require.Equal(t, "Bearer not-a-jwt", seen.Get("Authorization"))
}

func TestUnauthorizedTransport(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		token       func(t *testing.T) string
		wantCleared bool
		wantHook    bool
	}{
		{
			name:        "401 with valid session logs out",
			status:      http.StatusUnauthorized,
			token:       func(t *testing.T) string { return testutil.ValidToken(t, time.Now()) },
			wantCleared: true,
			wantHook:    true,
		},
		{
			name:   "401 without session is passed through",
			status: http.StatusUnauthorized,
		},
		{
			name:   "401 with expired session does not redirect",
			status: http.StatusUnauthorized,
			token: func(t *testing.T) string {
				return testutil.Mint(t, testutil.Claims(time.Now().Add(-time.Minute)))
			},
			wantCleared: true,
		},
		{
			name:   "403 leaves session alone",
			status: http.StatusForbidden,
			token:  func(t *testing.T) string { return testutil.ValidToken(t, time.Now()) },
		},
		{
			name:   "200 leaves session alone",
			status: http.StatusOK,
			token:  func(t *testing.T) string { return testutil.ValidToken(t, time.Now()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			srv := statusServer(t, tt.status, nil)
			m := newManager(t)
			if tt.token != nil {
				require.NoError(t, m.StoreToken(ctx, tt.token(t)))
			}

			var redirects []string
			rt := api.UnauthorizedTransport(m, api.DefaultLoginRedirect, func(redirect string) {
				redirects = append(redirects, redirect)
			}, zerolog.Nop())(http.DefaultTransport)

			resp := roundTrip(t, rt, srv.URL)
			require.Equal(t, tt.status, resp.StatusCode)

			_, stored := m.ReadToken(ctx)
			require.Equal(t, tt.wantCleared, tt.token != nil && !stored)
			if tt.wantHook {
				require.Equal(t, []string{"/login?expired=true"}, redirects)
			} else {
				require.Empty(t, redirects)
			}
		})
	}
}

func TestRequestIDTransport(t *testing.T) {
	var seen http.Header
	srv := statusServer(t, http.StatusOK, &seen)
	rt := api.RequestIDTransport(zerolog.Nop())(http.DefaultTransport)

	roundTrip(t, rt, srv.URL)
	first := seen.Get(api.RequestIDHeader)
	require.NotEmpty(t, first)

	roundTrip(t, rt, srv.URL)
	require.NotEqual(t, first, seen.Get(api.RequestIDHeader))

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set(api.RequestIDHeader, "caller-id")
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, "caller-id", seen.Get(api.RequestIDHeader))
}

func TestChainOrder(t *testing.T) {
	var order []string
	stage := func(name string) func(http.RoundTripper) http.RoundTripper {
		return func(next http.RoundTripper) http.RoundTripper {
			return api.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	srv := statusServer(t, http.StatusOK, nil)

	roundTrip(t, api.Chain(http.DefaultTransport, stage("a"), stage("b"), stage("c")), srv.URL)
	require.Equal(t, []string{"a", "b", "c"}, order)
}

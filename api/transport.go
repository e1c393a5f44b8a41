package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const RequestIDHeader = "X-Request-ID"

// TokenReader supplies the raw stored token, if any.
type TokenReader interface {
	ReadToken(ctx context.Context) (string, bool)
}

// SessionGuard is what the 401 stage needs from the session manager.
type SessionGuard interface {
	IsSessionValid(ctx context.Context) bool
	ClearToken(ctx context.Context) error
}

// ExpiredHandler is told where to send the user after a forced logout.
type ExpiredHandler func(redirect string)

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain wraps base with each middleware; the first one listed runs first.
func Chain(base http.RoundTripper, mw ...func(http.RoundTripper) http.RoundTripper) http.RoundTripper {
	chained := base
	for i := len(mw) - 1; i >= 0; i-- {
		chained = mw[i](chained)
	}
	return chained
}

// BearerTransport attaches the stored token as a bearer credential. It does
// not check the token; the server is the judge of that.
func BearerTransport(tokens TokenReader) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token, ok := tokens.ReadToken(r.Context())
			if !ok {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			(&oauth2.Token{AccessToken: token}).SetAuthHeader(r)
			return next.RoundTrip(r)
		})
	}
}

// UnauthorizedTransport tears the session down when the server answers 401
// while the client still believes it is logged in. The response is passed
// through unchanged either way.
func UnauthorizedTransport(guard SessionGuard, redirect string, onExpired ExpiredHandler, logger zerolog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(r)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}

			ctx := r.Context()
			if !guard.IsSessionValid(ctx) {
				return resp, nil
			}

			logger.Info().Str("path", r.URL.Path).Msg("Unauthorized response - logging out")
			if err := guard.ClearToken(ctx); err != nil {
				logger.Err(err).Msg("Failed to clear token after 401")
			}
			if onExpired != nil {
				onExpired(redirect)
			}
			return resp, nil
		})
	}
}

// RequestIDTransport stamps each request with a fresh id and logs the exchange.
func RequestIDTransport(logger zerolog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) == "" {
				r = r.Clone(r.Context())
				r.Header.Set(RequestIDHeader, uuid.NewString())
			}

			start := time.Now()
			resp, err := next.RoundTrip(r)

			var event *zerolog.Event
			if err != nil {
				event = logger.Warn().Err(err)
			} else {
				event = logger.Debug().Int("status", resp.StatusCode)
			}
			event.
				Str("request_id", r.Header.Get(RequestIDHeader)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("latency", time.Since(start)).
				Msg("api request")
			return resp, err
		})
	}
}

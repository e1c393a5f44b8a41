package oauthcallback

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/internal/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	RedirectPath        = "/oauth2/redirect"
	DefaultSuccessPath  = "/feed"
	DefaultLoginPath    = "/login"
	DefaultFailureError = "OAuth2 authentication failed. Please try again."
)

// TokenStorer persists the token delivered by the redirect.
type TokenStorer interface {
	StoreToken(ctx context.Context, token string) error
}

// Result is the outcome of one redirect. On failure Err wraps ErrOAuthFailed
// and Message is what the login page is told.
type Result struct {
	Token   string
	Message string
	Err     error
}

// Receiver handles the provider redirect. It stores the token and reports the
// outcome on Results.
type Receiver struct {
	store       TokenStorer
	state       string
	successPath string
	loginPath   string
	logger      zerolog.Logger
	results     chan Result
}

type Option func(*Receiver)

// WithState makes the receiver reject redirects whose state does not match.
// A redirect without any state is still accepted since the server may drop it.
func WithState(state string) Option {
	return func(r *Receiver) {
		r.state = state
	}
}

func WithSuccessPath(path string) Option {
	return func(r *Receiver) {
		r.successPath = path
	}
}

func WithLoginPath(path string) Option {
	return func(r *Receiver) {
		r.loginPath = path
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Receiver) {
		r.logger = logger
	}
}

func NewReceiver(store TokenStorer, options ...Option) *Receiver {
	r := &Receiver{
		store:       store,
		successPath: DefaultSuccessPath,
		loginPath:   DefaultLoginPath,
		logger:      log.Logger,
		results:     make(chan Result, 1),
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "oauthcallback").Logger()
	return r
}

// Results delivers at most one pending outcome. Later outcomes are dropped
// until the pending one is read. Redirects carrying neither a token nor an
// error, and redirects with a foreign state, are answered but not reported.
func (r *Receiver) Results() <-chan Result {
	return r.results
}

func (r *Receiver) RedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()
		token := query.Get("token")
		errorParam := query.Get("error")

		if state := query.Get("state"); state != "" && r.state != "" && state != r.state {
			r.fail(w, req, "Invalid state parameter", false)
			return
		}

		if token == "" {
			r.fail(w, req, utils.OrDefault(errorParam, DefaultFailureError), errorParam != "")
			return
		}

		if err := r.store.StoreToken(req.Context(), token); err != nil {
			r.logger.Err(err).Msg("Failed to store token from redirect")
			r.fail(w, req, DefaultFailureError, true)
			return
		}

		r.logger.Info().Msg("OAuth2 login completed")
		r.publish(Result{Token: token})
		http.Redirect(w, req, r.successPath, http.StatusSeeOther)
	}
}

func (r *Receiver) fail(w http.ResponseWriter, req *http.Request, message string, report bool) {
	r.logger.Warn().Str("error", message).Bool("reported", report).Msg("OAuth2 login failed")
	if report {
		r.publish(Result{Message: message, Err: fmt.Errorf("%w: %s", apperrors.ErrOAuthFailed, message)})
	}
	http.Redirect(w, req, r.loginURL(message), http.StatusSeeOther)
}

// loginURL adds the error to the login path, keeping any query it has.
func (r *Receiver) loginURL(message string) string {
	u, err := url.Parse(r.loginPath)
	if err != nil {
		u = &url.URL{Path: DefaultLoginPath}
	}
	q := u.Query()
	q.Set("error", message)
	u.RawQuery = q.Encode()
	return u.String()
}

func (r *Receiver) publish(res Result) {
	select {
	case r.results <- res:
	default:
	}
}

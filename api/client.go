package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/internal/utils"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL       = "http://localhost:4000/api"
	DefaultLoginRedirect = "/login?expired=true"
	DefaultPageSize      = 10
	defaultTimeout       = 30 * time.Second
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sessions is the part of the session manager the client depends on.
type Sessions interface {
	TokenReader
	SessionGuard
	StoreToken(ctx context.Context, token string) error
	Validate(ctx context.Context) (*session.Session, error)
	ValidateSessionShape(ctx context.Context) bool
	MissingClaims(ctx context.Context) []string
}

// Client talks to the SkillShare REST API.
type Client struct {
	client        httpClient
	baseURL       *url.URL
	sessions      Sessions
	logger        zerolog.Logger
	base          http.RoundTripper
	timeout       time.Duration
	pageSize      int
	loginRedirect string
	onExpired     ExpiredHandler
}

type Option func(*Client)

// WithTransport sets the innermost transport. Defaults to http.DefaultTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.base = rt
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithPageSize(size int) Option {
	return func(c *Client) {
		c.pageSize = size
	}
}

// WithOnSessionExpired registers the hook run after a 401 forces a logout.
func WithOnSessionExpired(redirect string, fn ExpiredHandler) Option {
	return func(c *Client) {
		if redirect != "" {
			c.loginRedirect = redirect
		}
		c.onExpired = fn
	}
}

// New builds a client whose requests pass through the request-id, bearer and
// 401 stages, in that order.
func New(baseURL string, sessions Sessions, options ...Option) (*Client, error) {
	baseURL = utils.OrDefault(baseURL, DefaultBaseURL)
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, apperrors.Wrapf(err, "api.New: base url %q", baseURL)
	}

	c := &Client{
		baseURL:       u,
		sessions:      sessions,
		logger:        log.Logger,
		base:          http.DefaultTransport,
		timeout:       defaultTimeout,
		pageSize:      DefaultPageSize,
		loginRedirect: DefaultLoginRedirect,
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "api").Logger()

	transport := Chain(c.base,
		RequestIDTransport(c.logger),
		BearerTransport(sessions),
		UnauthorizedTransport(sessions, c.loginRedirect, c.onExpired, c.logger),
	)
	c.client = &http.Client{Transport: transport, Timeout: c.timeout}
	return c, nil
}

// PageSize is the page size used when callers pass zero.
func (c *Client) PageSize() int {
	return c.pageSize
}

func (c *Client) endpoint(elem ...string) *url.URL {
	return c.baseURL.JoinPath(elem...)
}

func (c *Client) pageQuery(page, size int) url.Values {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = c.pageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (c *Client) get(ctx context.Context, u *url.URL, out any) error {
	return c.do(ctx, http.MethodGet, u, nil, out)
}

func (c *Client) post(ctx context.Context, u *url.URL, body, out any) error {
	return c.do(ctx, http.MethodPost, u, body, out)
}

func (c *Client) put(ctx context.Context, u *url.URL, body, out any) error {
	return c.do(ctx, http.MethodPut, u, body, out)
}

func (c *Client) delete(ctx context.Context, u *url.URL) error {
	return c.do(ctx, http.MethodDelete, u, nil, nil)
}

// do sends one JSON request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrapf(err, "%s %s: encode body", method, u.Path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return apperrors.Wrapf(err, "%s %s", method, u.Path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, "%s %s", method, u.Path)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return apperrors.Wrapf(err, "%s %s: decode response", method, u.Path)
	}
	return nil
}

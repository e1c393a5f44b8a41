package session

import (
	"context"
	"net/http"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*Manager)(nil)

// Token implements oauth2.TokenSource over the stored session token.
func (m *Manager) Token() (*oauth2.Token, error) {
	ctx := context.Background()
	s, err := m.Validate(ctx)
	if err != nil {
		return nil, err
	}
	raw, ok := m.ReadToken(ctx)
	if !ok {
		return nil, apperrors.ErrNoSession
	}
	return &oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
		Expiry:      s.ExpiresAt,
	}, nil
}

// HTTPClient returns a client that authorises every request with the session
// token and fails without sending when there is no valid session. The token is
// looked up per request, so a logout takes effect immediately.
func (m *Manager) HTTPClient(base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{Transport: &oauth2.Transport{Source: m, Base: base}}
}

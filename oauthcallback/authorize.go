package oauthcallback

import (
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
)

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

var providers = map[string]struct{}{
	ProviderGoogle:   {},
	ProviderFacebook: {},
}

// AuthorizeURL is where the user starts a social login. The server sends the
// browser back to redirectURI with a token or error query parameter.
func AuthorizeURL(oauthBaseURL, provider, redirectURI string) (string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if _, ok := providers[provider]; !ok {
		return "", apperrors.Wrapf(apperrors.ErrUnknownProvider, "provider %q", provider)
	}

	base, err := url.Parse(strings.TrimRight(oauthBaseURL, "/"))
	if err != nil {
		return "", apperrors.Wrapf(err, "oauth base url %q", oauthBaseURL)
	}
	u := base.JoinPath("oauth2", "authorize", provider)
	q := u.Query()
	q.Set("redirect_uri", redirectURI)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// RedirectURI builds the local callback address, carrying state so a stray
// or replayed redirect can be told apart from the one this login started.
func RedirectURI(callbackBase, state string) string {
	u, err := url.Parse(strings.TrimRight(callbackBase, "/"))
	if err != nil {
		u = &url.URL{Scheme: "http", Host: "localhost"}
	}
	u = u.JoinPath(RedirectPath)
	if state != "" {
		q := u.Query()
		q.Set("state", state)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

package oauthcallback_test

import (
	"net/url"
	"testing"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/oauthcallback"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	redirectURI := oauthcallback.RedirectURI("http://localhost:3000", "s1")
	require.Equal(t, "http://localhost:3000/oauth2/redirect?state=s1", redirectURI)

	got, err := oauthcallback.AuthorizeURL("http://localhost:4000/", "Google", redirectURI)
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	require.Equal(t, "/oauth2/authorize/google", u.Path)
	require.Equal(t, redirectURI, u.Query().Get("redirect_uri"))

	_, err = oauthcallback.AuthorizeURL("http://localhost:4000", "github", redirectURI)
	require.ErrorIs(t, err, apperrors.ErrUnknownProvider)
}

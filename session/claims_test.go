package session_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/internal/testutil"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	exp := fixedNow.Add(time.Hour)

	t.Run("full claim set", func(t *testing.T) {
		c, err := session.Decode(testutil.Mint(t, testutil.Claims(exp)))
		require.NoError(t, err)
		require.Equal(t, testutil.Username, c.Subject)
		require.Equal(t, "42", c.UserID)
		require.Equal(t, testutil.Email, c.Email)
		require.Equal(t, []string{"ROLE_USER"}, c.Roles)
		require.Equal(t, testutil.IssuedAt, c.Timestamp)
		require.True(t, exp.Equal(c.ExpiresAt))
		require.Empty(t, c.Missing())
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		_, err := session.Decode("  " + testutil.Mint(t, testutil.Claims(exp)) + "\n")
		require.NoError(t, err)
	})

	t.Run("null claim counts as missing", func(t *testing.T) {
		claims := testutil.Claims(exp)
		claims["email"] = nil
		c, err := session.Decode(testutil.Mint(t, claims))
		require.NoError(t, err)
		require.False(t, c.Has(session.ClaimEmail))
		require.Equal(t, []string{session.ClaimEmail}, c.Missing())
	})

	t.Run("non-string role", func(t *testing.T) {
		claims := testutil.Claims(exp)
		claims["roles"] = []any{"ROLE_USER", 7}
		_, err := session.Decode(testutil.Mint(t, claims))
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("string expiry", func(t *testing.T) {
		claims := testutil.Claims(exp)
		claims["exp"] = "tomorrow"
		_, err := session.Decode(testutil.Mint(t, claims))
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("not a jwt", func(t *testing.T) {
		_, err := session.Decode("hello")
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})
}

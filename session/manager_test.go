package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/internal/testutil"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/jrsteele09/skillshare-client/tokenstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testFixture struct {
	repo    session.TokenRepo
	manager *session.Manager
	now     time.Time
}

func setupTestFixture(t *testing.T, opts ...session.Option) *testFixture {
	t.Helper()
	f := &testFixture{
		repo: tokenstore.NewMemory(tokenstore.Config{}),
		now:  fixedNow,
	}
	opts = append([]session.Option{
		session.WithNowFunc(func() time.Time { return f.now }),
		session.WithLogger(zerolog.Nop()),
	}, opts...)
	f.manager = session.New(f.repo, opts...)
	return f
}

func (f *testFixture) store(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, f.manager.StoreToken(context.Background(), token))
}

func (f *testFixture) requireCleared(t *testing.T) {
	t.Helper()
	token, ok := f.manager.ReadToken(context.Background())
	require.False(t, ok)
	require.Empty(t, token)
}

func TestManager_MalformedTokensAreCleared(t *testing.T) {
	malformed := []string{
		"",
		"not-a-jwt",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.c2ln",
		"header.payload",
		"....",
	}

	for _, s := range malformed {
		t.Run(s, func(t *testing.T) {
			f := setupTestFixture(t)
			ctx := context.Background()
			f.store(t, s)

			require.False(t, f.manager.IsSessionValid(ctx))
			f.requireCleared(t)
		})
	}
}

func TestManager_WrongClaimTypeIsMalformed(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	claims := testutil.Claims(fixedNow.Add(time.Hour))
	claims["sub"] = 1234
	f.store(t, testutil.Mint(t, claims))

	_, err := f.manager.Validate(ctx)
	require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	f.requireCleared(t)
}

func TestManager_ExpiredTokenIsCleared(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.store(t, testutil.Mint(t, testutil.Claims(fixedNow.Add(-time.Second))))

	require.False(t, f.manager.IsSessionValid(ctx))
	f.requireCleared(t)
}

func TestManager_ExpiryBoundary(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.store(t, testutil.Mint(t, testutil.Claims(fixedNow)))
	_, err := f.manager.Validate(ctx)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestManager_ValidTokenYieldsSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	exp := fixedNow.Add(time.Hour)
	claims := testutil.Claims(exp)
	claims["roles"] = []string{"ROLE_USER", "ROLE_ADMIN"}
	token := testutil.Mint(t, claims)
	f.store(t, token)

	require.True(t, f.manager.IsSessionValid(ctx))

	s, ok := f.manager.CurrentSession(ctx)
	require.True(t, ok)
	require.Equal(t, testutil.Username, s.Username)
	require.Equal(t, "42", s.UserID)
	require.Equal(t, testutil.Email, s.Email)
	require.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, s.RoleList())
	require.True(t, s.HasRole("ROLE_ADMIN"))
	require.Equal(t, testutil.IssuedAt, s.IssuedAtMarker)
	require.True(t, exp.Equal(s.ExpiresAt))
	require.Equal(t, time.Hour, s.ExpiresIn(fixedNow))

	stored, ok := f.manager.ReadToken(ctx)
	require.True(t, ok)
	require.Equal(t, token, stored)
}

func TestManager_StringUserID(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	claims := testutil.Claims(fixedNow.Add(time.Hour))
	claims["userId"] = "u-77"
	f.store(t, testutil.Mint(t, claims))

	s, ok := f.manager.CurrentSession(ctx)
	require.True(t, ok)
	require.Equal(t, "u-77", s.UserID)
}

func TestManager_CurrentSessionAbsent(t *testing.T) {
	f := setupTestFixture(t)

	s, ok := f.manager.CurrentSession(context.Background())
	require.False(t, ok)
	require.Nil(t, s)

	_, err := f.manager.Validate(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNoSession)
}

func TestManager_ClearTokenIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.manager.ClearToken(ctx))
	f.requireCleared(t)

	f.store(t, "anything")
	require.NoError(t, f.manager.ClearToken(ctx))
	require.NoError(t, f.manager.Logout(ctx))
	f.requireCleared(t)
}

func TestManager_StoreTokenOverwrites(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.store(t, "token-a")
	f.store(t, "token-b")

	token, ok := f.manager.ReadToken(ctx)
	require.True(t, ok)
	require.Equal(t, "token-b", token)
}

func TestManager_ShapeAndValidityAreIndependent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.store(t, testutil.Mint(t, testutil.ClaimsWithout(fixedNow.Add(time.Hour), session.ClaimRoles)))

	require.False(t, f.manager.ValidateSessionShape(ctx))
	require.Equal(t, []string{session.ClaimRoles}, f.manager.MissingClaims(ctx))

	// The shape check must not have cleared anything.
	_, ok := f.manager.ReadToken(ctx)
	require.True(t, ok)

	require.True(t, f.manager.IsSessionValid(ctx))
	s, ok := f.manager.CurrentSession(ctx)
	require.True(t, ok)
	require.Empty(t, s.Roles)
}

func TestManager_ValidateSessionShape(t *testing.T) {
	ctx := context.Background()

	t.Run("complete token", func(t *testing.T) {
		f := setupTestFixture(t)
		f.store(t, testutil.ValidToken(t, fixedNow))
		require.True(t, f.manager.ValidateSessionShape(ctx))
		require.Empty(t, f.manager.MissingClaims(ctx))
	})

	for _, claim := range session.RequiredClaims {
		t.Run("missing "+claim, func(t *testing.T) {
			f := setupTestFixture(t)
			f.store(t, testutil.Mint(t, testutil.ClaimsWithout(fixedNow.Add(time.Hour), claim)))
			require.False(t, f.manager.ValidateSessionShape(ctx))
			_, ok := f.manager.ReadToken(ctx)
			require.True(t, ok)
		})
	}

	t.Run("no token", func(t *testing.T) {
		f := setupTestFixture(t)
		require.False(t, f.manager.ValidateSessionShape(ctx))
		require.Equal(t, session.RequiredClaims, f.manager.MissingClaims(ctx))
	})

	t.Run("malformed token is kept", func(t *testing.T) {
		f := setupTestFixture(t)
		f.store(t, "garbage")
		require.False(t, f.manager.ValidateSessionShape(ctx))
		_, ok := f.manager.ReadToken(ctx)
		require.True(t, ok)
	})
}

func TestManager_MissingSubjectOrExpiryIsInvalid(t *testing.T) {
	for _, claim := range []string{session.ClaimSubject, session.ClaimExpiry} {
		t.Run(claim, func(t *testing.T) {
			f := setupTestFixture(t)
			ctx := context.Background()
			f.store(t, testutil.Mint(t, testutil.ClaimsWithout(fixedNow.Add(time.Hour), claim)))

			require.False(t, f.manager.IsSessionValid(ctx))
			f.requireCleared(t)
		})
	}
}

func TestManager_TimeMovesPastExpiry(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.store(t, testutil.Mint(t, testutil.Claims(fixedNow.Add(time.Minute))))
	require.True(t, f.manager.IsSessionValid(ctx))

	f.now = fixedNow.Add(2 * time.Minute)
	require.False(t, f.manager.IsSessionValid(ctx))
	f.requireCleared(t)
}

// failingRepo returns errors from every call.
type failingRepo struct{}

func (failingRepo) Get(context.Context) (string, bool, error) { return "", false, errors.New("boom") }
func (failingRepo) Set(context.Context, string) error        { return errors.New("boom") }
func (failingRepo) Delete(context.Context) error             { return errors.New("boom") }
func (failingRepo) Close(context.Context) error              { return nil }

func TestManager_StorageFailuresFailClosed(t *testing.T) {
	m := session.New(failingRepo{}, session.WithLogger(zerolog.Nop()))
	ctx := context.Background()

	_, ok := m.ReadToken(ctx)
	require.False(t, ok)
	require.False(t, m.IsSessionValid(ctx))
	require.False(t, m.ValidateSessionShape(ctx))
	require.Error(t, m.StoreToken(ctx, "x"))
	require.Error(t, m.ClearToken(ctx))
}

package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const signingSecret = "test-signing-secret"

// Test identity used by the claim helpers.
const (
	Username = "jane"
	UserID   = 42
	Email    = "jane@example.com"
	IssuedAt = int64(1700000000000)
)

// Claims returns a full SkillShare claim set expiring at exp.
func Claims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       Username,
		"exp":       exp.Unix(),
		"userId":    UserID,
		"email":     Email,
		"roles":     []string{"ROLE_USER"},
		"timestamp": IssuedAt,
	}
}

// ClaimsWithout returns Claims(exp) minus the named claims.
func ClaimsWithout(exp time.Time, names ...string) jwt.MapClaims {
	c := Claims(exp)
	for _, n := range names {
		delete(c, n)
	}
	return c
}

// Mint signs claims with HS256.
func Mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	require.NoError(t, err)
	return token
}

// ValidToken mints a full token that expires an hour after now.
func ValidToken(t *testing.T, now time.Time) string {
	t.Helper()
	return Mint(t, Claims(now.Add(time.Hour)))
}

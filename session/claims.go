package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/internal/utils"
)

// Claim names carried by SkillShare access tokens.
const (
	ClaimSubject   = "sub"
	ClaimExpiry    = "exp"
	ClaimUserID    = "userId"
	ClaimEmail     = "email"
	ClaimRoles     = "roles"
	ClaimTimestamp = "timestamp"
)

// RequiredClaims must all be present for a token to pass the shape check
// performed when a login completes.
var RequiredClaims = []string{ClaimSubject, ClaimExpiry, ClaimUserID, ClaimEmail, ClaimRoles, ClaimTimestamp}

var parser = jwtlib.NewParser(jwtlib.WithJSONNumber())

// Claims is the typed payload of an access token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	UserID    string
	Email     string
	Roles     []string
	Timestamp int64

	present map[string]struct{}
}

// Has reports whether the named claim was present in the token.
func (c *Claims) Has(name string) bool {
	_, ok := c.present[name]
	return ok
}

// Missing returns the required claims absent from the token, in RequiredClaims order.
func (c *Claims) Missing() []string {
	missing := make([]string, 0)
	for _, name := range RequiredClaims {
		if !c.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Session builds the session view over these claims.
func (c *Claims) Session() *Session {
	roles := make(map[string]struct{}, len(c.Roles))
	for _, r := range c.Roles {
		roles[r] = struct{}{}
	}
	return &Session{
		Username:       c.Subject,
		UserID:         c.UserID,
		Email:          c.Email,
		Roles:          roles,
		IssuedAtMarker: c.Timestamp,
		ExpiresAt:      c.ExpiresAt,
	}
}

// Decode parses a raw token without verifying its signature. A claim that is
// present with the wrong type makes the whole token malformed.
func Decode(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", apperrors.ErrMalformedToken)
	}

	token, _, err := parser.ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedToken, err)
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: error extracting claims", apperrors.ErrMalformedToken)
	}

	return claimsFromMap(mapClaims)
}

func claimsFromMap(m jwtlib.MapClaims) (*Claims, error) {
	c := &Claims{present: make(map[string]struct{}, len(m))}
	for name, v := range m {
		if v != nil {
			c.present[name] = struct{}{}
		}
	}

	if c.Has(ClaimSubject) {
		sub, ok := m[ClaimSubject].(string)
		if !ok {
			return nil, invalidClaim(ClaimSubject)
		}
		c.Subject = sub
	}

	if c.Has(ClaimExpiry) {
		exp, err := m.GetExpirationTime()
		if err != nil || exp == nil {
			return nil, invalidClaim(ClaimExpiry)
		}
		c.ExpiresAt = exp.Time
	}

	if c.Has(ClaimUserID) {
		id, ok := utils.ToIDString(m[ClaimUserID])
		if !ok {
			return nil, invalidClaim(ClaimUserID)
		}
		c.UserID = id
	}

	if c.Has(ClaimEmail) {
		email, ok := m[ClaimEmail].(string)
		if !ok {
			return nil, invalidClaim(ClaimEmail)
		}
		c.Email = email
	}

	if c.Has(ClaimRoles) {
		raw, ok := m[ClaimRoles].([]any)
		if !ok {
			return nil, invalidClaim(ClaimRoles)
		}
		roles := utils.ToStringSlice(raw)
		if len(roles) != len(raw) {
			return nil, invalidClaim(ClaimRoles)
		}
		sort.Strings(roles)
		c.Roles = roles
	}

	if c.Has(ClaimTimestamp) {
		ts, ok := utils.ToInt64(m[ClaimTimestamp])
		if !ok {
			return nil, invalidClaim(ClaimTimestamp)
		}
		c.Timestamp = ts
	}

	return c, nil
}

func invalidClaim(name string) error {
	return fmt.Errorf("%w: invalid %q claim", apperrors.ErrMalformedToken, name)
}

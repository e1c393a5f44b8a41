package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Manager is the single source of truth for whether a usable session exists.
// Every decode or storage failure is converted to "not authenticated" here and
// never escapes to callers of the boolean accessors.
type Manager struct {
	repo     TokenRepo
	verifier SignatureVerifier
	nowFunc  func() time.Time
	logger   zerolog.Logger

	// serialises writes so a self-heal never deletes a token stored after
	// the one that was judged invalid
	mu sync.Mutex
}

type Option func(*Manager)

func WithNowFunc(now func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSignatureVerifier makes token signatures part of the validity check.
func WithSignatureVerifier(v SignatureVerifier) Option {
	return func(m *Manager) {
		m.verifier = v
	}
}

func New(repo TokenRepo, options ...Option) *Manager {
	m := &Manager{
		repo:   repo,
		logger: log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	m.logger = m.logger.With().Str("component", "session").Logger()
	return m
}

// StoreToken overwrites any stored token. No validation happens at write time.
func (m *Manager) StoreToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Set(ctx, token); err != nil {
		return apperrors.Wrapf(err, "Manager.StoreToken")
	}
	return nil
}

// ReadToken returns the stored token, or false when there is none. The token
// is not validated. A storage failure is logged and reported as absent.
func (m *Manager) ReadToken(ctx context.Context) (string, bool) {
	token, found, err := m.repo.Get(ctx)
	if err != nil {
		m.logger.Err(err).Msg("Failed to read token")
		return "", false
	}
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// ClearToken removes the stored token. Clearing twice is not an error.
func (m *Manager) ClearToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Delete(ctx); err != nil {
		return apperrors.Wrapf(err, "Manager.ClearToken")
	}
	return nil
}

// Logout ends the session
func (m *Manager) Logout(ctx context.Context) error {
	return m.ClearToken(ctx)
}

// IsSessionValid reports whether a present, decodable, unexpired token is
// stored. Malformed and expired tokens are cleared as a side effect.
func (m *Manager) IsSessionValid(ctx context.Context) bool {
	_, err := m.Validate(ctx)
	return err == nil
}

// CurrentSession returns the session view when IsSessionValid would be true.
func (m *Manager) CurrentSession(ctx context.Context) (*Session, bool) {
	s, err := m.Validate(ctx)
	if err != nil {
		return nil, false
	}
	return s, true
}

// Validate is the typed form of IsSessionValid. It returns ErrNoSession,
// ErrMalformedToken or ErrTokenExpired and heals storage the same way.
// Only subject and expiry are required here; see ValidateSessionShape for
// the full claim set.
func (m *Manager) Validate(ctx context.Context) (*Session, error) {
	raw, ok := m.ReadToken(ctx)
	if !ok {
		return nil, apperrors.ErrNoSession
	}

	claims, err := m.decode(ctx, raw)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Invalid token")
		m.heal(ctx, raw)
		return nil, err
	}

	if !claims.Has(ClaimSubject) || !claims.Has(ClaimExpiry) {
		err := fmt.Errorf("%w: missing subject or expiry", apperrors.ErrMalformedToken)
		m.logger.Debug().Err(err).Msg("Invalid token")
		m.heal(ctx, raw)
		return nil, err
	}

	if !claims.ExpiresAt.After(m.nowFunc()) {
		m.logger.Debug().Time("expired_at", claims.ExpiresAt).Msg("Token expired")
		m.heal(ctx, raw)
		return nil, apperrors.ErrTokenExpired
	}

	return claims.Session(), nil
}

// ValidateSessionShape checks that the stored token decodes and carries every
// claim in RequiredClaims. It never clears storage, so a caller can report a
// malformed credential from the server separately from "no session".
func (m *Manager) ValidateSessionShape(ctx context.Context) bool {
	raw, ok := m.ReadToken(ctx)
	if !ok {
		m.logger.Debug().Msg("No token found to validate")
		return false
	}

	claims, err := Decode(raw)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Token validation failed")
		return false
	}

	if missing := claims.Missing(); len(missing) > 0 {
		m.logger.Debug().Strs("missing", missing).Msg("Token missing required claims")
		return false
	}
	return true
}

// MissingClaims lists the required claims the stored token lacks. A missing
// or undecodable token reports every required claim.
func (m *Manager) MissingClaims(ctx context.Context) []string {
	raw, ok := m.ReadToken(ctx)
	if !ok {
		return append([]string(nil), RequiredClaims...)
	}
	claims, err := Decode(raw)
	if err != nil {
		return append([]string(nil), RequiredClaims...)
	}
	return claims.Missing()
}

func (m *Manager) decode(ctx context.Context, raw string) (*Claims, error) {
	if m.verifier != nil {
		if _, err := m.verifier.VerifySignature(ctx, raw); err != nil {
			return nil, fmt.Errorf("%w: signature: %v", apperrors.ErrMalformedToken, err)
		}
	}
	return Decode(raw)
}

// heal deletes raw from storage if it is still the stored token.
func (m *Manager) heal(ctx context.Context, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found, err := m.repo.Get(ctx)
	if err != nil {
		m.logger.Err(err).Msg("Failed to read token for cleanup")
		return
	}
	if !found || current != raw {
		return
	}
	if err := m.repo.Delete(ctx); err != nil {
		m.logger.Err(err).Msg("Failed to clear invalid token")
	}
}

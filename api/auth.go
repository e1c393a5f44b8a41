package api

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/model"
	"github.com/jrsteele09/skillshare-client/session"
)

// Login signs in with a username or email and stores the issued token.
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*session.Session, error) {
	var resp model.AuthResponse
	req := model.LoginRequest{UsernameOrEmail: usernameOrEmail, Password: password}
	if err := c.post(ctx, c.endpoint("auth", "signin"), req, &resp); err != nil {
		return nil, err
	}
	return c.CompleteLogin(ctx, resp)
}

// Register creates an account. When the server also issues a token the
// session is started straight away; otherwise the returned session is nil.
func (c *Client) Register(ctx context.Context, username, email, password string) (*session.Session, *model.AuthResponse, error) {
	var resp model.AuthResponse
	req := model.SignUpRequest{Username: username, Email: email, Password: password}
	if err := c.post(ctx, c.endpoint("auth", "signup"), req, &resp); err != nil {
		return nil, nil, err
	}
	if resp.BearerToken() == "" {
		return nil, &resp, nil
	}
	s, err := c.CompleteLogin(ctx, resp)
	return s, &resp, err
}

// CompleteLogin replaces the stored token with the one in resp and checks it
// carries the identity claims. A token that fails the check stays stored; the
// next validity read will remove it.
func (c *Client) CompleteLogin(ctx context.Context, resp model.AuthResponse) (*session.Session, error) {
	token := resp.BearerToken()
	if token == "" {
		return nil, apperrors.ErrTokenMissing
	}

	if err := c.sessions.ClearToken(ctx); err != nil {
		return nil, apperrors.Wrapf(err, "CompleteLogin: clear previous token")
	}
	if err := c.sessions.StoreToken(ctx, token); err != nil {
		return nil, apperrors.Wrapf(err, "CompleteLogin: store token")
	}

	if !c.sessions.ValidateSessionShape(ctx) {
		missing := c.sessions.MissingClaims(ctx)
		c.logger.Warn().Strs("missing", missing).Msg("Server issued a token without identity claims")
		if len(missing) == 0 {
			return nil, apperrors.ErrMalformedCredential
		}
		return nil, fmt.Errorf("%w: missing %s", apperrors.ErrMalformedCredential, strings.Join(missing, ", "))
	}

	return c.sessions.Validate(ctx)
}

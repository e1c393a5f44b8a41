package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/jrsteele09/skillshare-client/api"
	"github.com/jrsteele09/skillshare-client/internal/config"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/jrsteele09/skillshare-client/tokenstore"
	"github.com/rs/zerolog/log"
)

// app holds what every command needs.
type app struct {
	cfg      config.Config
	repo     session.TokenRepo
	sessions *session.Manager
	client   *api.Client
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	expired  atomic.Bool
}

func newApp(ctx context.Context, c config.Config, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	a := &app{
		cfg:    c,
		in:     bufio.NewReader(stdin),
		out:    stdout,
		errOut: stderr,
	}

	storeCtx, cancel := context.WithTimeout(ctx, c.GetStoreTimeout())
	defer cancel()
	repo, err := tokenstore.New(storeCtx, tokenstore.ConfigFrom(c), tokenstore.Dependencies{})
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	a.repo = repo

	opts := []session.Option{session.WithLogger(log.Logger)}
	if c.GetVerifySignatures() && c.GetJWKSURL() != "" {
		opts = append(opts, session.WithSignatureVerifier(session.NewRemoteVerifier(ctx, c.GetJWKSURL())))
	}
	a.sessions = session.New(repo, opts...)

	client, err := api.New(c.GetAPIBaseURL(), a.sessions,
		api.WithTimeout(c.GetRequestTimeout()),
		api.WithPageSize(c.GetDefaultPageSize()),
		api.WithLogger(log.Logger),
		api.WithOnSessionExpired(c.GetLoginRedirect(), a.onSessionExpired),
	)
	if err != nil {
		return nil, err
	}
	a.client = client
	return a, nil
}

// onSessionExpired runs inside the transport, so it only records the event.
// run turns it into the exit status once the command returns.
func (a *app) onSessionExpired(redirect string) {
	if a.expired.CompareAndSwap(false, true) {
		fmt.Fprintln(a.errOut, "session expired, please log in again")
		log.Debug().Str("redirect", redirect).Msg("Session expired")
	}
}

func (a *app) Close(ctx context.Context) error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close(ctx)
}

// prompt reads one line of input, used when a flag was left empty.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.errOut, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

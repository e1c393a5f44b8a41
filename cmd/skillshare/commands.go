package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/oauthcallback"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/rs/zerolog/log"
)

type command struct {
	summary         string
	banner          bool
	requiresSession bool
	run             func(ctx context.Context, a *app, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":     {summary: "sign in with username or email", banner: true, run: loginCmd},
		"register":  {summary: "create an account", banner: true, run: registerCmd},
		"oauth":     {summary: "sign in with google or facebook", banner: true, run: oauthCmd},
		"logout":    {summary: "forget the stored session", run: logoutCmd},
		"status":    {summary: "show the current session", run: statusCmd},
		"whoami":    {summary: "show the signed-in user", requiresSession: true, run: whoamiCmd},
		"feed":      {summary: "posts from people you follow", requiresSession: true, run: feedCmd},
		"posts":     {summary: "list posts, or a user's posts", requiresSession: true, run: postsCmd},
		"post":      {summary: "show, create or delete a post", requiresSession: true, run: postCmd},
		"comment":   {summary: "comment on a post", requiresSession: true, run: commentCmd},
		"like":      {summary: "like or unlike a post", requiresSession: true, run: likeCmd},
		"follow":    {summary: "follow a user", requiresSession: true, run: followCmd(true)},
		"unfollow":  {summary: "unfollow a user", requiresSession: true, run: followCmd(false)},
		"plans":     {summary: "list, show, create or track learning plans", requiresSession: true, run: plansCmd},
		"profile":   {summary: "show a profile or edit your own", requiresSession: true, run: profileCmd},
		"dashboard": {summary: "profile, feed and plans at once", requiresSession: true, run: dashboardCmd},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", apperrors.ErrInvalidRequest, what, s)
	}
	return id, nil
}

func loginCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "login")
	user := fs.String("u", "", "username or email")
	password := fs.String("p", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *user == "" {
		if *user, err = a.prompt("Username or email"); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = a.prompt("Password"); err != nil {
			return err
		}
	}

	s, err := a.client.Login(ctx, *user, *password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	a.printf("Logged in as %s\n", s.Username)
	return nil
}

func registerCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "register")
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		return fmt.Errorf("%w: -u and -e are required", apperrors.ErrInvalidRequest)
	}
	if *password == "" {
		var err error
		if *password, err = a.prompt("Password"); err != nil {
			return err
		}
	}

	s, resp, err := a.client.Register(ctx, *username, *email, *password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if s != nil {
		a.printf("Registered and logged in as %s\n", s.Username)
		return nil
	}
	msg := resp.Message
	if msg == "" {
		msg = "Registration successful"
	}
	a.printf("%s. Please log in.\n", msg)
	return nil
}

func oauthCmd(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: skillshare oauth <google|facebook>", apperrors.ErrInvalidRequest)
	}

	state := uuid.NewString()
	receiver := oauthcallback.NewReceiver(a.sessions,
		oauthcallback.WithState(state),
		oauthcallback.WithLogger(log.Logger),
	)
	srv := oauthcallback.NewServer(listenAddr(a.cfg.GetCallbackPort()), receiver)
	addr, err := srv.Start()
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Err(err).Msg("Failed to stop callback server")
		}
	}()

	redirectURI := oauthcallback.RedirectURI("http://"+callbackHost(addr), state)
	authURL, err := oauthcallback.AuthorizeURL(a.cfg.GetOAuthBaseURL(), args[0], redirectURI)
	if err != nil {
		return err
	}
	a.printf("Open this URL in your browser to continue:\n\n  %s\n\n", authURL)

	if _, err := srv.Wait(ctx, a.cfg.GetOAuthCallbackTimeout()); err != nil {
		return err
	}

	s, ok := a.sessions.CurrentSession(ctx)
	if !ok {
		return fmt.Errorf("%w: the provider returned an unusable token", apperrors.ErrMalformedCredential)
	}
	a.printf("Logged in as %s\n", s.Username)
	return nil
}

// listenAddr keeps the callback listener on loopback when only a port is set.
func listenAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return "127.0.0.1" + port
	}
	return port
}

func callbackHost(addr string) string {
	return strings.Replace(addr, "127.0.0.1", "localhost", 1)
}

func logoutCmd(ctx context.Context, a *app, _ []string) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

func statusCmd(ctx context.Context, a *app, _ []string) error {
	if _, stored := a.sessions.ReadToken(ctx); stored {
		if missing := a.sessions.MissingClaims(ctx); len(missing) > 0 {
			a.printf("Stored token is missing claims: %s\n", strings.Join(missing, ", "))
		}
	}

	s, ok := a.sessions.CurrentSession(ctx)
	if !ok {
		a.printf("Not logged in\n")
		return nil
	}
	printSession(a.out, s, time.Now())
	return nil
}

func printSession(w io.Writer, s *session.Session, now time.Time) {
	fmt.Fprintf(w, "Logged in as %s\n", s.Username)
	fmt.Fprintf(w, "  user id: %s\n", s.UserID)
	if s.Email != "" {
		fmt.Fprintf(w, "  email:   %s\n", s.Email)
	}
	if roles := s.RoleList(); len(roles) > 0 {
		fmt.Fprintf(w, "  roles:   %s\n", strings.Join(roles, ", "))
	}
	fmt.Fprintf(w, "  expires: %s (in %s)\n", s.ExpiresAt.Local().Format(time.RFC1123), s.ExpiresIn(now).Round(time.Second))
}

func whoamiCmd(ctx context.Context, a *app, _ []string) error {
	u, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.printf("%s <%s> (id %d)\n", u.Username, u.Email, u.ID)
	return nil
}

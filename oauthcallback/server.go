package oauthcallback

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/internal/utils"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server is the local listener the browser is sent back to.
type Server struct {
	mux      *http.ServeMux
	routes   []string
	receiver *Receiver
	logger   zerolog.Logger
	http     *http.Server
	listener net.Listener
}

func NewServer(addr string, receiver *Receiver) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		receiver: receiver,
		logger:   receiver.logger,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, ChainMiddleware(handler, s.middleware()...))
}

func (s *Server) middleware() []Middleware {
	return []Middleware{
		LoggingMiddleware(s.logger),
		RecoverMiddleware(s.logger),
		NoLeakMiddleware,
	}
}

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RedirectPath, s.receiver.RedirectHandler())
	// success and login targets may live on another origin
	if strings.HasPrefix(s.receiver.successPath, "/") {
		s.RegisterRouteFunc("GET "+pathOnly(s.receiver.successPath), pageHandler("Signed in to SkillShare. You can close this window."))
	}
	if strings.HasPrefix(s.receiver.loginPath, "/") {
		s.RegisterRouteFunc("GET "+pathOnly(s.receiver.loginPath), loginPageHandler())
	}
}

func pathOnly(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i]
	}
	return p
}

// Start binds the listener and serves in the background. It returns the bound
// address, which differs from the configured one when the port was ":0".
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return "", apperrors.Wrapf(err, "oauthcallback: listen on %s", s.http.Addr)
	}
	s.listener = ln
	s.logger.Debug().Strs("routes", s.routes).Str("addr", ln.Addr().String()).Msg("Callback server listening")

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Err(err).Msg("Callback server stopped")
		}
	}()
	return ln.Addr().String(), nil
}

// Wait blocks until the receiver reports an outcome, the timeout passes or
// ctx is done.
func (s *Server) Wait(ctx context.Context, timeout time.Duration) (Result, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-s.receiver.Results():
		return res, res.Err
	case <-timer.C:
		return Result{}, apperrors.ErrCallbackTimedOut
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("oauthcallback.Shutdown: %w", err)
	}
	return nil
}

func pageHandler(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, message)
	}
}

func loginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		msg := utils.OrDefault(r.URL.Query().Get("error"), DefaultFailureError)
		_, _ = fmt.Fprintf(w, "SkillShare login failed: %s\n", msg)
	}
}

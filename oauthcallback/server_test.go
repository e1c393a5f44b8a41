package oauthcallback_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/oauthcallback"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, store oauthcallback.TokenStorer) (*oauthcallback.Server, string) {
	t.Helper()
	receiver := oauthcallback.NewReceiver(store, oauthcallback.WithState("s1"), oauthcallback.WithLogger(zerolog.Nop()))
	srv := oauthcallback.NewServer("127.0.0.1:0", receiver)
	addr, err := srv.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, "http://" + addr
}

func TestServer_RoundTrip(t *testing.T) {
	store := &recordingStore{}
	srv, base := startServer(t, store)

	resp, err := http.Get(oauthcallback.RedirectURI(base, "s1") + "&token=abc")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	// redirect followed to the local success page
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/feed", resp.Request.URL.Path)
	require.Contains(t, string(body), "Signed in")

	res, err := srv.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, "abc", res.Token)
	require.Equal(t, []string{"abc"}, store.tokens)
}

func TestServer_Failure(t *testing.T) {
	srv, base := startServer(t, &recordingStore{})

	resp, err := http.Get(base + oauthcallback.RedirectPath + "?error=denied")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Contains(t, string(body), "denied")

	res, err := srv.Wait(context.Background(), time.Second)
	require.ErrorIs(t, err, apperrors.ErrOAuthFailed)
	require.Equal(t, "denied", res.Message)
}

func TestServer_WaitTimesOut(t *testing.T) {
	srv, _ := startServer(t, &recordingStore{})

	_, err := srv.Wait(context.Background(), 10*time.Millisecond)
	require.ErrorIs(t, err, apperrors.ErrCallbackTimedOut)
}

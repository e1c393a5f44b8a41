package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/skillshare-client/internal/config"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skillshare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("TOKEN_STORE", "")
	t.Setenv("CALLBACK_PORT", "")

	c, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:4000/api", c.GetAPIBaseURL())
	require.Equal(t, "file", c.GetStoreDriver())
	require.Equal(t, ":3000", c.GetCallbackPort())
	require.Equal(t, 10, c.GetDefaultPageSize())
	require.Equal(t, "/login?expired=true", c.GetLoginRedirect())
	require.False(t, c.GetVerifySignatures())
}

func TestLoad_FileOverlay(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("TOKEN_STORE", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "")

	path := writeConfigFile(t, `
API_BASE_URL: "https://skillshare.example.com/api/"
TOKEN_STORE: "redis"
REDIS_DB: "3"
HTTP_REQUEST_TIMEOUT: "2s"
`)

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://skillshare.example.com/api", c.GetAPIBaseURL())
	require.Equal(t, "redis", c.GetStoreDriver())
	require.Equal(t, 3, c.GetRedisDB())
	require.Equal(t, 2*time.Second, c.GetRequestTimeout())
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	t.Setenv("TOKEN_STORE", "memory")

	path := writeConfigFile(t, `TOKEN_STORE: "sqlite"`)

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "memory", c.GetStoreDriver())
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	t.Setenv("TOKEN_STORE", "")

	c, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "file", c.GetStoreDriver())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "TOKEN_STORE: [unterminated")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestSecurity_VerifySignaturesFollowsJWKS(t *testing.T) {
	t.Setenv("VERIFY_SIGNATURES", "")
	t.Setenv("JWKS_URL", "https://issuer.example.com/.well-known/jwks.json")

	c := config.New()
	require.True(t, c.GetVerifySignatures())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SKILLSHARE_TEST_VALUE", "")
	require.Equal(t, "fallback", config.GetEnv("SKILLSHARE_TEST_VALUE", "fallback"))

	t.Setenv("SKILLSHARE_TEST_VALUE", "set")
	require.Equal(t, "set", config.GetEnv("SKILLSHARE_TEST_VALUE", "fallback"))
}

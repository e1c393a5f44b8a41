package config

import (
	"strings"
	"time"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetOAuthBaseURL() string
	GetRequestTimeout() time.Duration
	GetDefaultPageSize() int
	GetLoginRedirect() string
}

type API struct {
	values overlay
}

var _ APIConfig = API{}

// GetAPIBaseURL returns the REST API root, e.g. "http://localhost:4000/api"
func (a API) GetAPIBaseURL() string {
	return strings.TrimRight(a.values.get("API_BASE_URL", "http://localhost:4000/api"), "/")
}

// GetOAuthBaseURL returns the host that serves /oauth2/authorize/{provider}
func (a API) GetOAuthBaseURL() string {
	return strings.TrimRight(a.values.get("OAUTH_BASE_URL", "http://localhost:4000"), "/")
}

func (a API) GetRequestTimeout() time.Duration {
	return a.values.getDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second)
}

func (a API) GetDefaultPageSize() int {
	return a.values.getInt("PAGE_SIZE", 10)
}

func (a API) GetLoginRedirect() string {
	return a.values.get("LOGIN_REDIRECT", "/login?expired=true")
}

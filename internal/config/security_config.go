package config

import "time"

type SecurityConfig interface {
	GetJWKSURL() string
	GetVerifySignatures() bool
	GetOAuthCallbackTimeout() time.Duration
}

type Security struct {
	values overlay
}

var _ SecurityConfig = Security{}

// GetJWKSURL returns the key set used to verify token signatures. Empty means
// tokens are decoded without verification, as the browser client does.
func (s Security) GetJWKSURL() string {
	return s.values.get("JWKS_URL", "")
}

func (s Security) GetVerifySignatures() bool {
	return s.values.getBool("VERIFY_SIGNATURES", s.GetJWKSURL() != "")
}

func (s Security) GetOAuthCallbackTimeout() time.Duration {
	return s.values.getDuration("OAUTH_CALLBACK_TIMEOUT", 5*time.Minute)
}

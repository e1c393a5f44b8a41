package session

import (
	"context"
	"crypto"

	"github.com/coreos/go-oidc/v3/oidc"
)

// SignatureVerifier checks a token's signature and returns its payload.
// oidc.KeySet implementations satisfy it.
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, jwt string) (payload []byte, err error)
}

var _ SignatureVerifier = (oidc.KeySet)(nil)

// NewRemoteVerifier verifies against a JWKS endpoint. Keys are fetched lazily
// and cached by go-oidc.
func NewRemoteVerifier(ctx context.Context, jwksURL string) SignatureVerifier {
	return oidc.NewRemoteKeySet(ctx, jwksURL)
}

// NewStaticVerifier verifies against pinned RSA, ECDSA or Ed25519 public keys.
func NewStaticVerifier(keys ...crypto.PublicKey) SignatureVerifier {
	return &oidc.StaticKeySet{PublicKeys: keys}
}

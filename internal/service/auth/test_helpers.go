package auth

import (
	"context"
	"testing"
	"time"
)

// TestSigningKey is a fixed 32-byte key for tests.
var TestSigningKey = SigningKey("0123456789abcdef0123456789abcdef")

// NewTestTokenCodec creates a TokenCodec with TestSigningKey and a one hour TTL.
func NewTestTokenCodec(t *testing.T, opts ...Option) TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(TestSigningKey, time.Hour, opts...)
	if err != nil {
		t.Fatalf("failed to create test token codec: %v", err)
	}
	return codec
}

// IssueTestToken signs a token for identity with codec.
func IssueTestToken(t *testing.T, codec TokenCodec, identity Identity) string {
	t.Helper()
	tok, err := codec.Issue(context.Background(), identity)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return tok.Value
}

// BearerHeader formats an Authorization header value for token.
func BearerHeader(token string) string {
	return "Bearer " + token
}

package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/phrazzld/task-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing
type MockTokenCodec struct {
	IssueFn  func(ctx context.Context, identity auth.Identity) (auth.Token, error)
	VerifyFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Token is returned by Issue when IssueFn is nil.
	Token string
	// Claims is returned by Verify when VerifyFn is nil.
	Claims *auth.Claims
	// VerifyErr is returned by Verify when VerifyFn is nil.
	VerifyErr error

	LastVerified string
}

var _ auth.TokenCodec = (*MockTokenCodec)(nil)

// Issue implements the TokenCodec interface
func (m *MockTokenCodec) Issue(ctx context.Context, identity auth.Identity) (auth.Token, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, identity)
	}
	tok := m.Token
	if tok == "" {
		tok = "mock-token-" + identity.Username
	}
	return auth.Token{Value: tok, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// Verify implements the TokenCodec interface
func (m *MockTokenCodec) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	m.LastVerified = token
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.Claims, nil
}

// MockPasswordHasher implements auth.PasswordHasher with a reversible
// "hashed:" prefix so tests can inspect stored digests.
type MockPasswordHasher struct {
	HashFn   func(plaintext string) (string, error)
	VerifyFn func(plaintext, digest string) bool

	VerifyCalls int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(plaintext)
	}
	return "hashed:" + plaintext, nil
}

// Verify implements the PasswordHasher interface
func (m *MockPasswordHasher) Verify(plaintext, digest string) bool {
	m.VerifyCalls++
	if m.VerifyFn != nil {
		return m.VerifyFn(plaintext, digest)
	}
	return strings.TrimPrefix(digest, "hashed:") == plaintext && strings.HasPrefix(digest, "hashed:")
}

package auth

import (
	"context"
	"time"
)

// Identity is who a token speaks for.
type Identity struct {
	UserID   int64
	Username string
}

// Claims are the verified contents of a token.
type Claims struct {
	Identity
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// Token is a signed bearer token and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenCodec issues and verifies signed, time-limited bearer tokens.
type TokenCodec interface {
	// Issue signs a token for identity, valid until now + TTL.
	// Returns ErrSigningFailed if signing fails.
	Issue(ctx context.Context, identity Identity) (Token, error)

	// Verify checks signature, algorithm and expiry and returns the claims.
	// Returns ErrExpiredToken, ErrMalformedToken or ErrInvalidToken.
	Verify(ctx context.Context, token string) (*Claims, error)
}

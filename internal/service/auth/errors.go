package auth

import (
	"errors"
	"fmt"
)

// Common authentication errors
var (
	// ErrInvalidToken indicates the token signature, algorithm or claims are not acceptable
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMalformedToken indicates the token could not be decoded at all.
	// It wraps ErrInvalidToken so callers that only care about validity can match either.
	ErrMalformedToken = fmt.Errorf("%w: malformed", ErrInvalidToken)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrSigningFailed indicates the token could not be signed
	ErrSigningFailed = errors.New("failed to sign token")

	// ErrHashingFailed indicates the password could not be hashed
	ErrHashingFailed = errors.New("failed to hash password")
)

package auth

import (
	"crypto/rand"
	"fmt"
)

// MinSigningKeyLength is the shortest accepted HMAC secret, in bytes.
const MinSigningKeyLength = 32

// SigningKey is the HMAC secret tokens are signed with.
type SigningKey []byte

// NewSigningKey returns the configured secret as a key. An empty secret
// produces a random key, so tokens do not survive a restart.
func NewSigningKey(secret string) (key SigningKey, generated bool, err error) {
	if secret == "" {
		key = make(SigningKey, MinSigningKeyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, false, fmt.Errorf("failed to generate signing key: %w", err)
		}
		return key, true, nil
	}

	if len(secret) < MinSigningKeyLength {
		return nil, false, fmt.Errorf("jwt secret must be at least %d characters", MinSigningKeyLength)
	}
	return SigningKey(secret), false, nil
}

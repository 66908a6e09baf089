package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/task-api/internal/platform/logger"
)

// hmacTokenCodec is a TokenCodec signing with HMAC-SHA256.
type hmacTokenCodec struct {
	key      SigningKey
	ttl      time.Duration
	leeway   time.Duration
	timeFunc func() time.Time // Injectable for testing
}

// tokenClaims is the JWT payload. It never carries password material.
type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenCodec implements TokenCodec interface
var _ TokenCodec = (*hmacTokenCodec)(nil)

// Option configures a TokenCodec.
type Option func(*hmacTokenCodec)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(c *hmacTokenCodec) { c.timeFunc = now }
}

// WithLeeway allows for clock drift when checking expiry.
func WithLeeway(d time.Duration) Option {
	return func(c *hmacTokenCodec) { c.leeway = d }
}

// NewTokenCodec creates an HS256 TokenCodec whose tokens live for ttl.
func NewTokenCodec(key SigningKey, ttl time.Duration, opts ...Option) (TokenCodec, error) {
	if len(key) < MinSigningKeyLength {
		return nil, fmt.Errorf("signing key must be at least %d bytes", MinSigningKeyLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", ttl)
	}

	c := &hmacTokenCodec{
		key:      key,
		ttl:      ttl,
		timeFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue implements TokenCodec.Issue
func (c *hmacTokenCodec) Issue(ctx context.Context, identity Identity) (Token, error) {
	log := logger.FromContext(ctx)
	now := c.timeFunc()
	expiresAt := now.Add(c.ttl)

	claims := tokenClaims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.key))
	if err != nil {
		log.Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.Int64("user_id", identity.UserID))
		return Token{}, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	return Token{Value: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify implements TokenCodec.Verify
func (c *hmacTokenCodec) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := c.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(c.key), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token rejected: expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token rejected: malformed", slog.String("error", err.Error()))
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token rejected: invalid signature")
		default:
			log.Debug("token rejected",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		log.Debug("token rejected: bad subject", slog.String("sub", claims.Subject))
		return nil, ErrInvalidToken
	}

	return &Claims{
		Identity:  Identity{UserID: userID, Username: claims.Username},
		Subject:   claims.Subject,
		IssuedAt:  numericTime(claims.IssuedAt),
		ExpiresAt: numericTime(claims.ExpiresAt),
		ID:        claims.ID,
	}, nil
}

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

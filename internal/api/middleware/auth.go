package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service/auth"
)

// Auth failure messages returned in the "detail" field.
const (
	MsgNotAuthenticated = "Not authenticated"
	MsgTokenExpired     = "Token expirado."
	MsgTokenInvalid     = "Token invalido"
	MsgSomethingWrong   = "Algo deu errado."
)

// AuthMiddleware provides bearer token authentication for routes.
// Claims are trusted as decoded; there is no per-request user lookup.
type AuthMiddleware struct {
	tokens auth.TokenCodec
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenCodec) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token from the Authorization header and
// adds the caller's identity to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgNotAuthenticated, auth.ErrMissingToken,
				shared.WithHeader("WWW-Authenticate", "Bearer"))
			return
		}

		claims, err := m.tokens.Verify(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgTokenExpired, err,
					shared.WithHeader("WWW-Authenticate", "Bearer"))
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgTokenInvalid, err,
					shared.WithHeader("WWW-Authenticate", "Bearer"), shared.WithElevatedLogLevel())
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusBadRequest, MsgSomethingWrong)
			}
			return
		}

		ctx := shared.WithIdentity(r.Context(), claims.Identity)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(slog.Int64("user_id", claims.UserID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

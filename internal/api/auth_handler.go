package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// TokenType is the OAuth2 token type reported by the token endpoint.
const TokenType = "bearer"

// AuthHandler handles account creation and login.
type AuthHandler struct {
	accounts service.AccountService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// CreateUser handles POST /api/user/create.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if _, err := h.accounts.CreateAccount(r.Context(), req.Username, req.Password); err != nil {
		// Credential field errors are request errors, unlike task rule violations.
		var valErr *domain.ValidationError
		if errors.As(err, &valErr) {
			err = &shared.RequestError{Fields: valErr.Fields}
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, OKResponse{OK: true})
}

// Token handles POST /api/auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, shared.WithElevatedLogLevel())
		return
	}

	logger.FromContext(r.Context()).Debug("token issued",
		slog.String("username", req.Username),
		slog.Time("expires_at", token.ExpiresAt))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token.Value,
		TokenType:   TokenType,
	})
}

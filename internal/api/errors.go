package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// Client-facing error messages.
const (
	MsgUsernameExists     = "Usuário já existe."
	MsgInvalidCredentials = "Credenciais invalidos."
	MsgTaskNotFound       = "Tarefa não encontrada."
	MsgNotAuthenticated   = "Not authenticated"
	MsgTokenExpired       = "Token expirado."
	MsgTokenInvalid       = "Token invalido"
	MsgSomethingWrong     = "Algo deu errado."
	MsgInternal           = "Erro interno."
	MsgTooManyRequests    = "Muitas tentativas. Tente novamente mais tarde."
)

// MapErrorToStatusCode maps internal errors to HTTP status codes
// without leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var reqErr *shared.RequestError
	switch {
	case err == nil:
		return http.StatusOK

	// Request decoding and tag validation
	case errors.As(err, &reqErr):
		return http.StatusUnprocessableEntity

	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidStateFilter),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, auth.ErrSigningFailed),
		errors.Is(err, auth.ErrHashingFailed):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternal
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return MsgNotAuthenticated
	case errors.Is(err, auth.ErrExpiredToken):
		return MsgTokenExpired
	case errors.Is(err, auth.ErrInvalidToken):
		return MsgTokenInvalid
	case errors.Is(err, store.ErrTaskNotFound):
		return MsgTaskNotFound
	case errors.Is(err, store.ErrUsernameExists):
		return MsgUsernameExists
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, domain.ErrInvalidStateFilter):
		return domain.MsgInvalidStateFilter
	case errors.Is(err, auth.ErrSigningFailed),
		errors.Is(err, auth.ErrHashingFailed),
		errors.Is(err, domain.ErrValidation):
		return MsgSomethingWrong
	default:
		return MsgInternal
	}
}

// errorDetail returns the value of the "detail" field for err: the per-field
// map for validation failures, otherwise the safe message.
func errorDetail(err error) any {
	var reqErr *shared.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Fields
	}
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Fields
	}
	return GetSafeErrorMessage(err)
}

// HandleAPIError writes the response for err and logs the underlying cause.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), errorDetail(err), err, opts...)
}

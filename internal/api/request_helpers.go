package api

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
)

// getPathInt64 extracts a positive integer path parameter.
// A missing or non-numeric value is reported as a 422 field error.
func getPathInt64(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, &shared.RequestError{Fields: map[string]string{paramName: shared.MsgFieldRequired}}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &shared.RequestError{Fields: map[string]string{paramName: shared.MsgFieldType}}
	}
	return n, nil
}

// decodeCredentials reads username and password from a JSON body or, for
// OAuth2 password-style clients, from a form-urlencoded body.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, error) {
	var req CredentialsRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes)
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(shared.MaxBodyBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return req, &shared.RequestError{Fields: map[string]string{"body": shared.MsgBodyInvalid}}
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	default:
		if err := shared.DecodeJSON(w, r, &req); err != nil {
			return req, err
		}
	}

	if err := shared.ValidateRequest(req); err != nil {
		return req, err
	}
	if strings.TrimSpace(req.Username) == "" {
		return req, &shared.RequestError{Fields: map[string]string{"username": shared.MsgFieldRequired}}
	}
	// The tag limits count runes; storage and bcrypt limits are in bytes.
	if len(req.Username) > domain.MaxUsernameLength {
		return req, &shared.RequestError{Fields: map[string]string{"username": shared.MsgFieldTooLong}}
	}
	if len(req.Password) > domain.MaxPasswordBytes {
		return req, &shared.RequestError{Fields: map[string]string{"password": shared.MsgFieldTooLong}}
	}
	return req, nil
}


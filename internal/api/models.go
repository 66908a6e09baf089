package api

import (
	"bytes"
	"encoding/json"

	"github.com/phrazzld/task-api/internal/domain"
)

// CredentialsRequest defines the payload for account creation and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse defines the successful response for the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// OKResponse acknowledges a successful write.
type OKResponse struct {
	OK bool `json:"ok"`
}

// CreateTaskRequest defines the payload for creating a task.
// State is checked by the domain so that a bad value gets the structured 400.
type CreateTaskRequest struct {
	Title       string  `json:"titulo"    validate:"required"`
	Description *string `json:"descricao"`
	State       string  `json:"estado"    validate:"required"`
}

// UpdateTaskRequest defines the payload for a partial task update.
type UpdateTaskRequest struct {
	Title       *string        `json:"titulo"`
	Description OptionalString `json:"descricao"`
	State       *string        `json:"estado"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:          r.Title,
		Description:    r.Description.Value,
		SetDescription: r.Description.Set,
		State:          r.State,
	}
}

// OptionalString distinguishes an absent JSON field from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only called when the field is present.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

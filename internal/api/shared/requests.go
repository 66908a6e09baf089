package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// Field messages for request validation failures.
const (
	MsgFieldRequired = "Campo obrigatório"
	MsgFieldTooLong  = "Valor muito longo"
	MsgFieldInvalid  = "Valor inválido"
	MsgFieldType     = "Tipo inválido"
	MsgBodyInvalid   = "JSON inválido"
)

// Global validator instance for reuse. Field errors are reported under their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// RequestError reports request decoding or validation failures per field.
// Handlers answer it with 422.
type RequestError struct {
	Fields map[string]string
}

func (e *RequestError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+": "+v)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// DecodeJSON decodes the request body into v. Syntax and type errors come
// back as *RequestError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return &RequestError{Fields: map[string]string{typeErr.Field: MsgFieldType}}
	case errors.As(err, &maxErr):
		return &RequestError{Fields: map[string]string{"body": MsgFieldTooLong}}
	case errors.Is(err, io.EOF):
		return &RequestError{Fields: map[string]string{"body": MsgFieldRequired}}
	default:
		return &RequestError{Fields: map[string]string{"body": MsgBodyInvalid}}
	}
}

// ValidateRequest validates v with struct tags. Failures come back as *RequestError.
func ValidateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("validation setup: %w", err)
	}

	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[fe.Field()] = tagMessage(fe.Tag())
	}
	return &RequestError{Fields: fields}
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return MsgFieldRequired
	case "max":
		return MsgFieldTooLong
	default:
		return MsgFieldInvalid
	}
}

// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Error bodies always carry a "detail" key: a string for NotFound,
// Conflict and internal errors, and a list of field errors for
// validation failures.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Detail messages shared by the handlers.
const (
	DetailStudentNotFound    = "Student not found"
	DetailEmailRegistered    = "Email already registered"
	DetailInternalError      = "Internal server error"
	DetailServiceUnavailable = "Service unavailable"
	MessageStudentDeleted    = "Student deleted successfully"
)

// Response is the envelope for NotFound, Conflict and internal errors.
//
//	{ "detail": "Student not found" }
type Response struct {
	Detail string `json:"detail"`
}

// Message is the body of a successful operation with nothing to return.
//
//	{ "message": "Student deleted successfully" }
type Message struct {
	Message string `json:"message"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse is the body of a 422 response.
//
//	{ "detail": [ { "field": "email", "message": "field email must be a valid email address" } ] }
type ValidationResponse struct {
	Detail []FieldError `json:"detail"`
}

// WriteJSON writes data as JSON with the given HTTP status code.
//
// Header() → WriteHeader() → body writes: once WriteHeader is called
// headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps a message into the standard error envelope.
func GeneralError(detail string) Response {
	return Response{Detail: detail}
}

// InvalidField reports a single rejected field, e.g. a malformed body or
// path parameter.
func InvalidField(field string, err error) ValidationResponse {
	return ValidationResponse{Detail: []FieldError{{Field: field, Message: err.Error()}}}
}

// ValidationError converts validator.ValidationErrors into one FieldError
// per failing field, with a plain English message.
func ValidationError(errs validator.ValidationErrors) ValidationResponse {
	fieldErrs := make([]FieldError, 0, len(errs))

	for _, e := range errs {
		var msg string
		switch e.ActualTag() {
		case "required":
			msg = fmt.Sprintf("field %s is required", e.Field())
		case "email":
			msg = fmt.Sprintf("field %s must be a valid email address", e.Field())
		case "datetime":
			msg = fmt.Sprintf("field %s must be a date in YYYY-MM-DD format", e.Field())
		case "min":
			msg = fmt.Sprintf("field %s must not be empty", e.Field())
		case "max":
			msg = fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param())
		default:
			msg = fmt.Sprintf("field %s is invalid", e.Field())
		}

		fieldErrs = append(fieldErrs, FieldError{Field: e.Field(), Message: msg})
	}

	return ValidationResponse{Detail: fieldErrs}
}

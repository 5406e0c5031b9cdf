// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success responses may be any JSON shape (a student, a list…). Error
// responses always look like:
//
//	{
//	  "timestamp": "2026-01-02T15:04:05Z",
//	  "status": 400,
//	  "error": "Bad Request",
//	  "message": "Email ana@x.com is already taken",
//	  "path": "/api/v1/students"
//	}
//
// Clients show message[status][error] to the user.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// WriteJSON encodes data as the response body. Headers are set before
// WriteHeader; nothing can be added to them afterwards.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Error writes the standard error body for status with the given message.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) error {
	return WriteJSON(w, status, ErrorBody(r, status, message))
}

// ErrorBody builds the standard error body.
func ErrorBody(r *http.Request, status int, message string) types.ErrorBody {
	body := types.ErrorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
	if r != nil {
		body.Path = r.URL.Path
	}
	return body
}

// ValidationMessage joins the validator's field errors into one message:
//
//	field Name is required, field Gender must be one of MALE FEMALE OTHER
func ValidationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			parts = append(parts, fmt.Sprintf("field %s is required", e.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("field %s must be one of %s", e.Field(), e.Param()))
		default:
			parts = append(parts, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}
	return strings.Join(parts, ", ")
}

// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the client, the sync workflows, the handlers and storage can all import
// types without depending on each other.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Gender is one of a fixed set of values accepted by the students service.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Genders lists every accepted value, in the order a form should offer them.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Student represents a student record as returned by the service.
//
// The ID is assigned by the service and never changes afterwards. A Student
// held by the client is always a value the service actually returned; the
// client never edits these fields locally.
type Student struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender Gender `json:"gender"`
}

// Draft is a student that has not been persisted yet: everything but the ID.
//
// Struct tags serve two purposes:
//
//  1. json:"..."      the request body sent to POST /api/v1/students.
//
//  2. validate:"..."  presence rules checked by go-playground/validator.
//     The service runs the same rules; the client only runs them as an
//     early shortcut before submitting.
type Draft struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required"`
	Gender Gender `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
}

// validate is shared; a *validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = validator.New()

// Validate runs the presence rules over the draft. Whitespace-only name or
// email count as missing.
func (d Draft) Validate() error {
	return validate.Struct(d.Trimmed())
}

// Trimmed returns the draft with surrounding whitespace removed from the
// text fields.
func (d Draft) Trimmed() Draft {
	return Draft{
		Name:   strings.TrimSpace(d.Name),
		Email:  strings.TrimSpace(d.Email),
		Gender: d.Gender,
	}
}

// IsZero reports whether no field of the draft has been filled in.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// ErrorBody is the JSON shape of every non-2xx response from the service:
//
//	{ "message": "Email a@b.c is already taken", "status": 400, "error": "Bad Request" }
//
// Timestamp and Path are informational and may be absent.
type ErrorBody struct {
	Timestamp string `json:"timestamp,omitempty"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path,omitempty"`
}

// String renders the body the way users see it: message[status][error].
func (b ErrorBody) String() string {
	return fmt.Sprintf("%s[%d][%s]", b.Message, b.Status, b.Error)
}

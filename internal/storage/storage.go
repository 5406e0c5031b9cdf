// Package storage defines the Storage interface, the contract any database
// backend of the students service must satisfy.
//
// Handlers depend only on this interface, so the sqlite and postgres
// backends are interchangeable and tests can run against either.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-manager/internal/types"
)

var (
	// ErrEmailTaken is returned by CreateStudent when another student
	// already uses the email.
	ErrEmailTaken = errors.New("email already taken")

	// ErrNotFound is returned when no student has the requested id.
	ErrNotFound = errors.New("student not found")
)

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a new student and returns it with its
	// generated ID. Emails are unique across the collection.
	CreateStudent(ctx context.Context, draft types.Draft) (types.Student, error)

	// GetStudents returns every student ordered by ID.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// DeleteStudentByID removes a student permanently. Returns ErrNotFound
	// if the id does not exist.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Close releases the underlying connections.
	Close() error
}

// Package storage defines the Storage interface, the contract every
// database backend satisfies, together with the sentinel errors callers
// match with errors.Is.
//
// Handlers depend only on this interface; the sqlite and postgres
// packages provide the concrete backends.
package storage

//go:generate mockgen -source=storage.go -destination=../mock/storage_mock.go -package=mock

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-management-api/internal/types"
)

var (
	// ErrStudentNotFound is returned when no student matches the lookup key.
	ErrStudentNotFound = errors.New("student not found")

	// ErrEmailAlreadyExists is returned when a write would give two
	// students the same email. It is raised from the datastore's own
	// UNIQUE constraint, so it holds even when two requests race.
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Storage is the database contract.
type Storage interface {
	// ListStudents returns every student. The slice is empty, not nil,
	// when there are none. Callers must not rely on the order.
	ListStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID returns ErrStudentNotFound if id does not exist.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudentByEmail returns ErrStudentNotFound if no student has email.
	GetStudentByEmail(ctx context.Context, email string) (types.Student, error)

	// CreateStudent inserts student (its ID is ignored) and returns the
	// stored record with the assigned ID.
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// UpdateStudentByID writes only the fields set in update and returns
	// the stored record.
	UpdateStudentByID(ctx context.Context, id int64, update types.StudentUpdate) (types.Student, error)

	// DeleteStudentByID removes the student permanently. It returns
	// ErrStudentNotFound when nothing was removed.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Ping checks the datastore is reachable.
	Ping(ctx context.Context) error

	Close() error
}

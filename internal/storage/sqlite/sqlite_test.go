package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-management-api/internal/config"
	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/storage"
	"github.com/aanand-mishra/student-management-api/internal/types"
)

// setupTestDB opens a migrated SQLite database in a temporary directory.
func setupTestDB(t *testing.T) *SQLite {
	t.Helper()

	cfg := config.Storage{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "students.db"),
	}

	s, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err, "failed to create store")

	t.Cleanup(func() {
		require.NoError(t, s.Close(), "failed to close database")
	})

	return s
}

func newStudent(email string) types.Student {
	return types.Student{
		FirstName:   "Ana",
		LastName:    "Lee",
		Email:       email,
		DateOfBirth: types.NewDate(2000, time.January, 1),
		Grade:       "10",
	}
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetStudent(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	in := newStudent("ana@x.com")

	created, err := s.CreateStudent(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	t.Run("by id", func(t *testing.T) {
		got, err := s.GetStudentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, in.FirstName, got.FirstName)
		assert.Equal(t, in.LastName, got.LastName)
		assert.Equal(t, in.Email, got.Email)
		assert.Equal(t, "2000-01-01", got.DateOfBirth.String())
		assert.Equal(t, in.Grade, got.Grade)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := s.GetStudentByEmail(ctx, "ana@x.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("ids are unique", func(t *testing.T) {
		second, err := s.CreateStudent(ctx, newStudent("bob@x.com"))
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, second.ID)
	})
}

func TestGetStudent_NotFound(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	_, err := s.GetStudentByID(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)

	_, err = s.GetStudentByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)
}

func TestCreateStudent_DuplicateEmail(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	_, err := s.CreateStudent(ctx, newStudent("ana@x.com"))
	require.NoError(t, err)

	dup := newStudent("ana@x.com")
	dup.FirstName = "Other"
	_, err = s.CreateStudent(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrEmailAlreadyExists)

	all, err := s.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListStudents(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	empty, err := s.ListStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := s.CreateStudent(ctx, newStudent(email))
		require.NoError(t, err)
	}

	all, err := s.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	emails := make([]string, 0, len(all))
	for _, st := range all {
		emails = append(emails, st.Email)
	}
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com", "c@x.com"}, emails)
}

func TestUpdateStudentByID(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, newStudent("ana@x.com"))
	require.NoError(t, err)

	t.Run("only grade changes", func(t *testing.T) {
		got, err := s.UpdateStudentByID(ctx, created.ID, types.StudentUpdate{Grade: strPtr("A")})
		require.NoError(t, err)

		assert.Equal(t, "A", got.Grade)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.FirstName, got.FirstName)
		assert.Equal(t, created.LastName, got.LastName)
		assert.Equal(t, created.Email, got.Email)
		assert.Equal(t, created.DateOfBirth.String(), got.DateOfBirth.String())

		stored, err := s.GetStudentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", stored.Grade)
	})

	t.Run("every field", func(t *testing.T) {
		dob := types.NewDate(1999, time.March, 4)
		got, err := s.UpdateStudentByID(ctx, created.ID, types.StudentUpdate{
			FirstName:   strPtr("Anna"),
			LastName:    strPtr("Li"),
			Email:       strPtr("anna@x.com"),
			DateOfBirth: &dob,
			Grade:       strPtr("11"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Anna", got.FirstName)
		assert.Equal(t, "Li", got.LastName)
		assert.Equal(t, "anna@x.com", got.Email)
		assert.Equal(t, "1999-03-04", got.DateOfBirth.String())
		assert.Equal(t, "11", got.Grade)
	})

	t.Run("empty update returns current record", func(t *testing.T) {
		got, err := s.UpdateStudentByID(ctx, created.ID, types.StudentUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Anna", got.FirstName)
	})

	t.Run("unchanged value is still applied", func(t *testing.T) {
		got, err := s.UpdateStudentByID(ctx, created.ID, types.StudentUpdate{Grade: strPtr("11")})
		require.NoError(t, err)
		assert.Equal(t, "11", got.Grade)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.UpdateStudentByID(ctx, 999, types.StudentUpdate{Grade: strPtr("B")})
		assert.ErrorIs(t, err, storage.ErrStudentNotFound)

		_, err = s.UpdateStudentByID(ctx, 999, types.StudentUpdate{})
		assert.ErrorIs(t, err, storage.ErrStudentNotFound)
	})

	t.Run("email taken by another student", func(t *testing.T) {
		_, err := s.CreateStudent(ctx, newStudent("taken@x.com"))
		require.NoError(t, err)

		_, err = s.UpdateStudentByID(ctx, created.ID, types.StudentUpdate{Email: strPtr("taken@x.com")})
		assert.ErrorIs(t, err, storage.ErrEmailAlreadyExists)

		stored, err := s.GetStudentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "anna@x.com", stored.Email)
	})
}

func TestDeleteStudentByID(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, newStudent("ana@x.com"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteStudentByID(ctx, created.ID))

	_, err = s.GetStudentByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)

	err = s.DeleteStudentByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)

	// The email is free again once the record is gone.
	_, err = s.CreateStudent(ctx, newStudent("ana@x.com"))
	assert.NoError(t, err)
}

func TestPing(t *testing.T) {
	s := setupTestDB(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNew_CreatesDataDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "dir", "students.db")

	s, err := New(context.Background(), config.Storage{Driver: config.DriverSQLite, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.FileExists(t, dsn)
}

func TestIsFilePath(t *testing.T) {
	assert.True(t, isFilePath("storage/storage.db"))
	assert.False(t, isFilePath(":memory:"))
	assert.False(t, isFilePath("file:test.db?cache=shared"))
}

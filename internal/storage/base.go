package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/types"
)

const studentsTable = "students"

// Column names of the students table. Queries list them explicitly so a
// new column never shifts what gets scanned.
const (
	colID          = "id"
	colFirstName   = "first_name"
	colLastName    = "last_name"
	colEmail       = "email"
	colDateOfBirth = "date_of_birth"
	colGrade       = "grade"
)

var studentColumns = []string{colID, colFirstName, colLastName, colEmail, colDateOfBirth, colGrade}

var returningStudent = "RETURNING " + strings.Join(studentColumns, ", ")

// studentRow is the storage-side shape of a student. It is kept apart from
// types.Student so the table and the wire format can evolve separately.
type studentRow struct {
	ID          int64      `db:"id"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Email       string     `db:"email"`
	DateOfBirth types.Date `db:"date_of_birth"`
	Grade       string     `db:"grade"`
}

func (r studentRow) student() types.Student {
	return types.Student{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		DateOfBirth: r.DateOfBirth,
		Grade:       r.Grade,
	}
}

// BaseStore implements Storage on top of any database/sql driver. The
// dialect packages fill in the placeholder style and how to recognise a
// unique-constraint violation.
type BaseStore struct {
	DB      *sqlx.DB
	Builder sq.StatementBuilderType

	// IsUniqueViolation reports whether err came from a UNIQUE constraint.
	IsUniqueViolation func(err error) bool
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *BaseStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *BaseStore) ListStudents(ctx context.Context) ([]types.Student, error) {
	query, args, err := s.Builder.
		Select(studentColumns...).
		From(studentsTable).
		OrderBy(colID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListStudents: build query: %w", err)
	}

	var rows []studentRow
	if err := s.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "ListStudents").Msg("select failed")
		return nil, fmt.Errorf("ListStudents: select: %w", err)
	}

	students := make([]types.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.student())
	}

	return students, nil
}

func (s *BaseStore) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	return s.getOne(ctx, "GetStudentByID", sq.Eq{colID: id})
}

func (s *BaseStore) GetStudentByEmail(ctx context.Context, email string) (types.Student, error) {
	return s.getOne(ctx, "GetStudentByEmail", sq.Eq{colEmail: email})
}

func (s *BaseStore) getOne(ctx context.Context, op string, where sq.Eq) (types.Student, error) {
	query, args, err := s.Builder.
		Select(studentColumns...).
		From(studentsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return types.Student{}, fmt.Errorf("%s: build query: %w", op, err)
	}

	var row studentRow
	err = s.DB.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, ErrStudentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", op).Msg("select failed")
		return types.Student{}, fmt.Errorf("%s: select: %w", op, err)
	}

	return row.student(), nil
}

func (s *BaseStore) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	query, args, err := s.Builder.
		Insert(studentsTable).
		Columns(colFirstName, colLastName, colEmail, colDateOfBirth, colGrade).
		Values(student.FirstName, student.LastName, student.Email, student.DateOfBirth, student.Grade).
		Suffix(returningStudent).
		ToSql()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: build query: %w", err)
	}

	var row studentRow
	if err := s.DB.GetContext(ctx, &row, query, args...); err != nil {
		if s.isUniqueViolation(err) {
			return types.Student{}, ErrEmailAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "CreateStudent").Msg("insert failed")
		return types.Student{}, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	return row.student(), nil
}

func (s *BaseStore) UpdateStudentByID(ctx context.Context, id int64, update types.StudentUpdate) (types.Student, error) {
	if update.IsEmpty() {
		return s.GetStudentByID(ctx, id)
	}

	builder := s.Builder.Update(studentsTable)
	if update.FirstName != nil {
		builder = builder.Set(colFirstName, *update.FirstName)
	}
	if update.LastName != nil {
		builder = builder.Set(colLastName, *update.LastName)
	}
	if update.Email != nil {
		builder = builder.Set(colEmail, *update.Email)
	}
	if update.DateOfBirth != nil {
		builder = builder.Set(colDateOfBirth, *update.DateOfBirth)
	}
	if update.Grade != nil {
		builder = builder.Set(colGrade, *update.Grade)
	}

	query, args, err := builder.
		Where(sq.Eq{colID: id}).
		Suffix(returningStudent).
		ToSql()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: build query: %w", err)
	}

	var row studentRow
	err = s.DB.GetContext(ctx, &row, query, args...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return types.Student{}, ErrStudentNotFound
	case err != nil && s.isUniqueViolation(err):
		return types.Student{}, ErrEmailAlreadyExists
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "UpdateStudentByID").Msg("update failed")
		return types.Student{}, fmt.Errorf("UpdateStudentByID: update: %w", err)
	}

	return row.student(), nil
}

func (s *BaseStore) DeleteStudentByID(ctx context.Context, id int64) error {
	query, args, err := s.Builder.
		Delete(studentsTable).
		Where(sq.Eq{colID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: build query: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "DeleteStudentByID").Msg("delete failed")
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return ErrStudentNotFound
	}

	return nil
}

func (s *BaseStore) isUniqueViolation(err error) bool {
	return s.IsUniqueViolation != nil && s.IsUniqueViolation(err)
}

// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

// Student represents a stored student record as it appears on the wire.
//
// Every field is always populated: absence is only meaningful in an
// update request (see StudentUpdate).
type Student struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	DateOfBirth Date   `json:"date_of_birth"`
	Grade       string `json:"grade"`
}

// CreateStudentRequest is the body of POST /students.
//
// Struct tags serve two purposes:
//
//  1. json:"..." names the key the field is decoded from.
//
//  2. validate:"..." lists the rules checked by the go-playground/validator
//     package before anything reaches storage.
type CreateStudentRequest struct {
	FirstName   string `json:"first_name"    validate:"required,max=100"`
	LastName    string `json:"last_name"     validate:"required,max=100"`
	Email       string `json:"email"         validate:"required,email,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Grade       string `json:"grade"         validate:"required,max=20"`
}

// Student converts a validated request into a Student without an ID.
func (r CreateStudentRequest) Student() (Student, error) {
	dob, err := ParseDate(r.DateOfBirth)
	if err != nil {
		return Student{}, err
	}

	return Student{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		DateOfBirth: dob,
		Grade:       r.Grade,
	}, nil
}

// UpdateStudentRequest is the body of PUT /students/{id}.
//
// Every field is a pointer: nil means the key was absent (or null) and the
// stored value stays untouched. A non-nil pointer is validated with the same
// rules as creation; omitempty only skips nil pointers, so an explicit ""
// still fails min=1.
type UpdateStudentRequest struct {
	FirstName   *string `json:"first_name"    validate:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name"     validate:"omitempty,min=1,max=100"`
	Email       *string `json:"email"         validate:"omitempty,email,max=100"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Grade       *string `json:"grade"         validate:"omitempty,min=1,max=20"`
}

// Update converts a validated request into the sparse StudentUpdate.
func (r UpdateStudentRequest) Update() (StudentUpdate, error) {
	upd := StudentUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Grade:     r.Grade,
	}

	if r.DateOfBirth != nil {
		dob, err := ParseDate(*r.DateOfBirth)
		if err != nil {
			return StudentUpdate{}, err
		}
		upd.DateOfBirth = &dob
	}

	return upd, nil
}

// StudentUpdate is a sparse set of field changes. Only non-nil fields are
// written to storage.
type StudentUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	DateOfBirth *Date
	Grade       *string
}

// IsEmpty reports whether no field is set.
func (u StudentUpdate) IsEmpty() bool {
	return u.FirstName == nil &&
		u.LastName == nil &&
		u.Email == nil &&
		u.DateOfBirth == nil &&
		u.Grade == nil
}

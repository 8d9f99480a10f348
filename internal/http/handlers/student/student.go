// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────
// A router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject the storage handle, each factory accepts it and returns a
// function with exactly that signature:
//
//	r.Post("/students", student.New(store))
//	//                          ^^^^^^^^^^
//	//      New(store) is called ONCE at startup; the returned
//	//      handler runs on EVERY incoming request.
package student

import (
	"errors"
	"net/http"

	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/metrics"
	"github.com/aanand-mishra/student-management-api/internal/storage"
	"github.com/aanand-mishra/student-management-api/internal/types"
	"github.com/aanand-mishra/student-management-api/internal/utils/response"
)

// Operation label values for metrics.StudentOperationsTotal.
const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "first_name": "Ana", "last_name": "Lee", "email": "ana@x.com",
//	  "date_of_birth": "2000-01-01", "grade": "10" }
//
// Success response (200 OK): the stored student including its id.
//
// Error responses:
//
//	400 Bad Request            email already registered
//	422 Unprocessable Entity   empty body, malformed JSON, or failed validation
//	500 Internal               database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)
		log.Info().Msg("creating a student")

		// ── Step 1: Decode and validate ───────────────────────────────
		var req types.CreateStudentRequest
		if !decodeAndValidate(w, r, &req) {
			observe(opCreate, metrics.OutcomeInvalid)
			return
		}

		student, err := req.Student()
		if err != nil {
			observe(opCreate, metrics.OutcomeInvalid)
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.InvalidField("date_of_birth", err))
			return
		}

		// ── Step 2: Duplicate pre-check ───────────────────────────────
		// Gives the friendly error early; the UNIQUE constraint checked
		// in step 3 is what actually guarantees uniqueness.
		_, err = store.GetStudentByEmail(ctx, student.Email)
		if err == nil {
			log.Info().Str("email", student.Email).Msg("email already registered")
			writeStorageError(w, r, opCreate, storage.ErrEmailAlreadyExists)
			return
		}
		if !errors.Is(err, storage.ErrStudentNotFound) {
			writeStorageError(w, r, opCreate, err)
			return
		}

		// ── Step 3: Persist ───────────────────────────────────────────
		created, err := store.CreateStudent(ctx, student)
		if err != nil {
			writeStorageError(w, r, opCreate, err)
			return
		}

		log.Info().Int64("id", created.ID).Msg("student created")
		observe(opCreate, metrics.OutcomeSuccess)

		response.WriteJSON(w, http.StatusOK, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /students/{id}
//
// Error responses:
//
//	404 Not Found              no student with that id
//	422 Unprocessable Entity   id is not an integer
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			observe(opGet, metrics.OutcomeInvalid)
			return
		}

		logger.FromRequest(r).Info().Int64("id", id).Msg("getting a student")

		student, err := store.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, r, opGet, err)
			return
		}

		observe(opGet, metrics.OutcomeSuccess)
		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /students and returns a JSON array of all students:
// [] (not null) when there are none.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("getting all students")

		students, err := store.ListStudents(r.Context())
		if err != nil {
			writeStorageError(w, r, opList, err)
			return
		}

		observe(opList, metrics.OutcomeSuccess)
		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /students/{id}
// Applies only the keys present in the body; everything else keeps its
// stored value.
//
// Request body (JSON), every field optional:
//
//	{ "grade": "11" }
//
// Error responses:
//
//	400 Bad Request            new email already registered to another student
//	404 Not Found              no student with that id
//	422 Unprocessable Entity   invalid id, empty body, or validation failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			observe(opUpdate, metrics.OutcomeInvalid)
			return
		}

		log := logger.FromRequest(r)
		log.Info().Int64("id", id).Msg("updating a student")

		var req types.UpdateStudentRequest
		if !decodeAndValidate(w, r, &req) {
			observe(opUpdate, metrics.OutcomeInvalid)
			return
		}

		update, err := req.Update()
		if err != nil {
			observe(opUpdate, metrics.OutcomeInvalid)
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.InvalidField("date_of_birth", err))
			return
		}

		updated, err := store.UpdateStudentByID(r.Context(), id, update)
		if err != nil {
			writeStorageError(w, r, opUpdate, err)
			return
		}

		log.Info().Int64("id", id).Msg("student updated")
		observe(opUpdate, metrics.OutcomeSuccess)

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /students/{id}.
//
// Success response (200 OK):
//
//	{ "message": "Student deleted successfully" }
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			observe(opDelete, metrics.OutcomeInvalid)
			return
		}

		log := logger.FromRequest(r)
		log.Info().Int64("id", id).Msg("deleting a student")

		if err := store.DeleteStudentByID(r.Context(), id); err != nil {
			writeStorageError(w, r, opDelete, err)
			return
		}

		log.Info().Int64("id", id).Msg("student deleted")
		observe(opDelete, metrics.OutcomeSuccess)

		response.WriteJSON(w, http.StatusOK, response.Message{Message: response.MessageStudentDeleted})
	}
}

// writeStorageError maps a storage outcome onto its HTTP status. Unknown
// errors are logged and reported without leaking driver details.
func writeStorageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrStudentNotFound):
		observe(op, metrics.OutcomeNotFound)
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(response.DetailStudentNotFound))
	case errors.Is(err, storage.ErrEmailAlreadyExists):
		observe(op, metrics.OutcomeConflict)
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(response.DetailEmailRegistered))
	default:
		observe(op, metrics.OutcomeError)
		logger.FromRequest(r).Err(err).Str("operation", op).Msg("storage failure")
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(response.DetailInternalError))
	}
}

func observe(op, outcome string) {
	metrics.StudentOperationsTotal.WithLabelValues(op, outcome).Inc()
}

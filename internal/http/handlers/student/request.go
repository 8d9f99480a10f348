package student

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-management-api/internal/utils/response"
)

// validate is shared by all handlers; a *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON key ("first_name") instead of the Go
	// field name ("FirstName").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

var (
	errEmptyBody = errors.New("request body is empty")
	errInvalidID = errors.New("invalid id: must be an integer")
)

// parseID reads the {id} path segment. On failure it writes a 422 and
// returns false.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.InvalidField("id", errInvalidID))
		return 0, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into dst and runs the validate
// tags on it. On failure it writes a 422 and returns false, so nothing
// invalid ever reaches storage.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.InvalidField("body", errEmptyBody))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.InvalidField("body", err))
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(validateErrs))
			return false
		}
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.InvalidField("body", err))
		return false
	}

	return true
}

package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aanand-mishra/student-management-api/internal/config"
	"github.com/aanand-mishra/student-management-api/internal/http/middleware"
	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/mock"
	"github.com/aanand-mishra/student-management-api/internal/storage/sqlite"
	"github.com/aanand-mishra/student-management-api/internal/types"
)

var anyOrigin = config.CORS{AllowedOrigins: []string{"*"}}

func newSQLiteRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.New(context.Background(), config.Storage{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "students.db"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return New(store, logger.Nop(), anyOrigin)
}

func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestStudentLifecycle walks one student through create, duplicate create,
// partial update, delete and a read after delete.
func TestStudentLifecycle(t *testing.T) {
	h := newSQLiteRouter(t)

	const ana = `{"first_name":"Ana","last_name":"Lee","email":"ana@x.com","date_of_birth":"2000-01-01","grade":"10"}`

	rec := send(t, h, http.MethodPost, "/students", ana)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"first_name":"Ana","last_name":"Lee","email":"ana@x.com","date_of_birth":"2000-01-01","grade":"10"}`, rec.Body.String())

	rec = send(t, h, http.MethodPost, "/students", ana)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Email already registered"}`, rec.Body.String())

	rec = send(t, h, http.MethodPut, "/students/1", `{"grade":"11"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"first_name":"Ana","last_name":"Lee","email":"ana@x.com","date_of_birth":"2000-01-01","grade":"11"}`, rec.Body.String())

	rec = send(t, h, http.MethodDelete, "/students/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Student deleted successfully"}`, rec.Body.String())

	rec = send(t, h, http.MethodGet, "/students/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Student not found"}`, rec.Body.String())

	rec = send(t, h, http.MethodDelete, "/students/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollectionRoutes_AcceptTrailingSlash(t *testing.T) {
	h := newSQLiteRouter(t)

	rec := send(t, h, http.MethodGet, "/students/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = send(t, h, http.MethodPost, "/students/", `{"first_name":"Bo","last_name":"Kim","email":"bo@x.com","date_of_birth":"2001-05-06","grade":"9"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(t, h, http.MethodPost, "/students", `{"first_name":"Cy","last_name":"Ng","email":"cy@x.com","date_of_birth":"2002-07-08","grade":"8"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(t, h, http.MethodGet, "/students", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []types.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.ElementsMatch(t, []string{"bo@x.com", "cy@x.com"}, []string{list[0].Email, list[1].Email})
}

func TestUpdate_EmailTakenByAnotherStudent(t *testing.T) {
	h := newSQLiteRouter(t)

	for _, body := range []string{
		`{"first_name":"Ana","last_name":"Lee","email":"ana@x.com","date_of_birth":"2000-01-01","grade":"10"}`,
		`{"first_name":"Bo","last_name":"Kim","email":"bo@x.com","date_of_birth":"2001-05-06","grade":"9"}`,
	} {
		require.Equal(t, http.StatusOK, send(t, h, http.MethodPost, "/students", body).Code)
	}

	rec := send(t, h, http.MethodPut, "/students/2", `{"email":"ana@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Email already registered"}`, rec.Body.String())
}

func TestValidationErrors(t *testing.T) {
	h := newSQLiteRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "bad email on create", method: http.MethodPost, path: "/students", body: `{"first_name":"Ana","last_name":"Lee","email":"nope","date_of_birth":"2000-01-01","grade":"10"}`},
		{name: "empty create body", method: http.MethodPost, path: "/students"},
		{name: "non-numeric id", method: http.MethodGet, path: "/students/abc"},
		{name: "bad date on update", method: http.MethodPut, path: "/students/1", body: `{"date_of_birth":"01-01-2000"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var body struct {
				Detail []struct {
					Field   string `json:"field"`
					Message string `json:"message"`
				} `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newSQLiteRouter(t)

	rec := send(t, h, http.MethodPatch, "/students/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTraceIDIsEchoed(t *testing.T) {
	h := newSQLiteRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set(middleware.TraceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(middleware.TraceIDHeader))
}

func TestCORS(t *testing.T) {
	h := newSQLiteRouter(t)

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/students", nil)
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/students/1", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Less(t, rec.Code, 300)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rec := send(t, newSQLiteRouter(t), http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("datastore down", func(t *testing.T) {
		store := mock.NewMockStorage(gomock.NewController(t))
		store.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		rec := send(t, New(store, logger.Nop(), anyOrigin), http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"detail":"Service unavailable"}`, rec.Body.String())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	h := newSQLiteRouter(t)

	require.Equal(t, http.StatusOK, send(t, h, http.MethodGet, "/students", "").Code)

	rec := send(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `students_http_request_duration_seconds_count{method="GET",route="/students",status="200"}`)
	assert.Contains(t, rec.Body.String(), `students_operations_total{operation="list",outcome="success"}`)
}

func TestPanicIsRecovered(t *testing.T) {
	store := mock.NewMockStorage(gomock.NewController(t))
	store.EXPECT().ListStudents(gomock.Any()).DoAndReturn(func(context.Context) ([]types.Student, error) {
		panic("boom")
	})

	rec := send(t, New(store, logger.Nop(), anyOrigin), http.MethodGet, "/students", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

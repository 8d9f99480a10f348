// Package router assembles the HTTP surface of the service: the middleware
// chain, the Student routes and the operational endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aanand-mishra/student-management-api/internal/config"
	"github.com/aanand-mishra/student-management-api/internal/http/handlers/student"
	appMiddleware "github.com/aanand-mishra/student-management-api/internal/http/middleware"
	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/storage"
	"github.com/aanand-mishra/student-management-api/internal/utils/response"
)

// New returns the root handler.
//
// Route table:
//
//	GET    /students, /students/   list all students
//	POST   /students, /students/   create a student
//	GET    /students/{id}          get one student
//	PUT    /students/{id}          partially update a student
//	DELETE /students/{id}          delete a student
//	GET    /health                 datastore liveness
//	GET    /metrics                Prometheus exposition
func New(store storage.Storage, log *logger.Logger, corsCfg config.CORS) http.Handler {
	r := chi.NewRouter()

	r.Use(appMiddleware.WithTraceID(log))
	r.Use(appMiddleware.WithLogging)
	r.Use(appMiddleware.WithMetrics)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{appMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", health(store))
	r.Handle("/metrics", promhttp.Handler())

	for _, collection := range []string{"/students", "/students/"} {
		r.Get(collection, student.GetList(store))
		r.Post(collection, student.New(store))
	}

	r.Get("/students/{id}", student.GetByID(store))
	r.Put("/students/{id}", student.Update(store))
	r.Delete("/students/{id}", student.Delete(store))

	return r
}

type healthStatus struct {
	Status string `json:"status"`
}

func health(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			logger.FromRequest(r).Err(err).Msg("health check failed")
			response.WriteJSON(w, http.StatusServiceUnavailable, response.GeneralError(response.DetailServiceUnavailable))
			return
		}
		response.WriteJSON(w, http.StatusOK, healthStatus{Status: "ok"})
	}
}

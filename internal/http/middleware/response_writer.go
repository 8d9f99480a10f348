package middleware

import "net/http"

// responseWriter records the status code and body size of a response so
// they can be reported after the handler returns.
type responseWriter struct {
	http.ResponseWriter

	// status is zero until the first WriteHeader (explicit or implied by Write).
	status int

	wroteHeader bool

	// size is the running total of body bytes written.
	size int
}

func wrap(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

// WriteHeader forwards the first call only; later calls are ignored the
// same way net/http ignores them.
func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.wroteHeader {
		return
	}
	rw.status = statusCode
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Status returns the recorded status, defaulting to 200 for handlers that
// never wrote anything.
func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

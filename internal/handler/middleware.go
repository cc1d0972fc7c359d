package handler

import (
	"fmt"
	"net/http"
	"time"

	"pdf-ocr-converter/internal/domain"
)

// RequestLogging logs each request with its duration.
func RequestLogging(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"duration", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

// Recovery converts handler panics into a 500 response instead of killing
// the connection. Conversion goroutines have their own recovery in the
// runner; this covers the request path itself.
func Recovery(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic in request handler", fmt.Errorf("panic: %v", rec), "method", r.Method, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

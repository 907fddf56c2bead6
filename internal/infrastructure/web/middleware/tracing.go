package middleware

import (
	"net/http"
	"time"

	"fx-rate-service/internal/infrastructure/logging"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// ResponseWriter wrapper to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// RequestTracingMiddleware propaga el request ID y registra la finalización de cada request.
// Reutiliza X-Request-ID o X-Correlation-ID si llegan; si no, genera uno.
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		candidate := r.Header.Get(HeaderRequestID)
		if candidate == "" {
			candidate = r.Header.Get(HeaderCorrelationID)
		}
		ctx, requestID := logging.EnsureRequestID(r.Context(), candidate)
		ctx = logging.WithStartTime(ctx, startTime)

		w.Header().Set(HeaderRequestID, requestID)

		wrapped := &responseWriter{ResponseWriter: w}

		r = r.WithContext(ctx)
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode == 0 {
			wrapped.statusCode = http.StatusOK
		}

		durationMs := float64(time.Since(startTime).Nanoseconds()) / 1e6
		logging.HTTPRequest(ctx, r.Method, r.URL.Path, wrapped.statusCode, durationMs)
		logging.Debug(ctx, "HTTP response written", logging.Fields{
			"response_size": wrapped.written,
			"request_size":  r.ContentLength,
		})
	})
}

// getRemoteIP extracts the real client IP from request
func getRemoteIP(r *http.Request) string {
	if xForwardedFor := r.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		return xForwardedFor
	}

	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}

	return r.RemoteAddr
}

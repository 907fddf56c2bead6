package middleware

import (
	"net/http"

	"fx-rate-service/internal/infrastructure/logging"
)

// LoggingMiddleware registra la recepción del request con el logger HTTP.
// Va después de RequestTracingMiddleware para tener el request ID en el contexto.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		logging.HTTP().RequestReceived(ctx, r.Method, r.URL.Path, r.UserAgent(), getRemoteIP(r))
		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			"headers":        extractImportantHeaders(r),
			"content_length": r.ContentLength,
		})

		next.ServeHTTP(w, r)
	})
}

// extractImportantHeaders extracts relevant headers for logging
func extractImportantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)

	// nunca headers con credenciales
	importantHeaders := []string{
		"Content-Type",
		"Accept",
		HeaderCorrelationID,
		"X-Forwarded-For",
		"X-Real-IP",
	}

	for _, header := range importantHeaders {
		if value := r.Header.Get(header); value != "" {
			headers[header] = value
		}
	}

	return headers
}

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"fx-rate-service/internal/application/dto"
	"fx-rate-service/internal/infrastructure/logging"
)

// RecoveryMiddleware convierte un panic del handler en un 500 INTERNAL_ERROR
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logging.Error(r.Context(), "Recovered panic in HTTP handler", logging.Fields{
				logging.FieldHTTPMethod: r.Method,
				logging.FieldHTTPPath:   r.URL.Path,
				logging.FieldError:      fmt.Sprint(rec),
				"stack":                 string(debug.Stack()),
			})

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(dto.NewErrorResponseWithCode("INTERNAL_ERROR", "internal server error", "500"))
		}()

		next.ServeHTTP(w, r)
	})
}

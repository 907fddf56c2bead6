package logging

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// maxRequestIDLength limita IDs recibidos de clientes
const maxRequestIDLength = 128

// GenerateRequestID genera un request ID (UUID v4)
func GenerateRequestID() string {
	return uuid.NewString()
}

// EnsureRequestID reutiliza el ID recibido (header o metadata) o genera uno nuevo,
// y lo guarda en el contexto
func EnsureRequestID(ctx context.Context, candidate string) (context.Context, string) {
	requestID := strings.TrimSpace(candidate)
	if requestID == "" || len(requestID) > maxRequestIDLength {
		requestID = GenerateRequestID()
	}
	return WithRequestID(ctx, requestID), requestID
}

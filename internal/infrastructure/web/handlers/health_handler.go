package handlers

import (
	"net/http"
	"time"

	"fx-rate-service/internal/application/dto"
	"fx-rate-service/internal/domain/interfaces"
)

// HealthHandler maneja el endpoint de health check
type HealthHandler struct {
	fxService interfaces.FxService
	mapper    *dto.FxMapper
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler(fxService interfaces.FxService) *HealthHandler {
	return &HealthHandler{
		fxService: fxService,
		mapper:    dto.NewFxMapper(),
	}
}

// Health godoc
// @Summary Health check
// @Description Healthy when at least one provider is healthy and the cache is connected.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is healthy"
// @Failure 503 {object} dto.HealthResponse "Both providers unhealthy or cache disconnected"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := h.fxService.HealthCheck(ctx)

	statusCode := http.StatusOK
	if !status.Healthy {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSONResponse(ctx, w, statusCode, h.mapper.ToHealthResponse(status, time.Now()))
}

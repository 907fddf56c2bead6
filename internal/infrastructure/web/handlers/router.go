package handlers

import (
	"net/http"

	_ "fx-rate-service/docs"
	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/metrics"
	"fx-rate-service/internal/infrastructure/web/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter registra las rutas REST, /metrics y /swagger/ sobre un gorilla/mux router
func NewRouter(fxService interfaces.FxService) *mux.Router {
	fxHandler := NewFxHandler(fxService)
	healthHandler := NewHealthHandler(fxService)

	router := mux.NewRouter()
	router.Use(
		middleware.RecoveryMiddleware,
		middleware.RequestTracingMiddleware,
		middleware.LoggingMiddleware,
		metrics.HTTPMetricsMiddleware,
	)

	fx := router.PathPrefix("/v1/fx").Subrouter()
	fx.HandleFunc("/rate", fxHandler.GetExchangeRate).Methods(http.MethodPost)
	fx.HandleFunc("/convert", fxHandler.Convert).Methods(http.MethodPost)
	fx.HandleFunc("/rates", fxHandler.GetRates).Methods(http.MethodPost)

	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	router.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	return router
}

package api

import (
	"github.com/alexivanou/countrydata-api/internal/service"
	"github.com/alexivanou/countrydata-api/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Fixed paths before the {name} wildcard
	router.HandleFunc("/countries/refresh", handler.RefreshCountries).Methods("POST")
	router.HandleFunc("/countries/image", handler.GetSummaryImage).Methods("GET")
	router.HandleFunc("/countries", handler.ListCountries).Methods("GET")
	router.HandleFunc("/countries/{name}", handler.GetCountry).Methods("GET")
	router.HandleFunc("/countries/{name}", handler.DeleteCountry).Methods("DELETE")
	router.HandleFunc("/status", handler.GetStatus).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}

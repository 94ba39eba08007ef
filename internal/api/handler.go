package api

import (
	"net/http"

	"github.com/alexivanou/countrydata-api/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RefreshCountries handles POST /countries/refresh
func (h *Handler) RefreshCountries(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.RefreshCountries(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// ListCountries handles GET /countries
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	countries, err := h.service.ListCountries(r.Context(), q.Get("region"), q.Get("currency"), q.Get("sort"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, countries)
}

// GetCountry handles GET /countries/{name}
func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	country, err := h.service.GetCountry(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, country)
}

// DeleteCountry handles DELETE /countries/{name}.
// Deleting an absent record is not an error, the response reports deleted=false.
func (h *Handler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	deleted, err := h.service.DeleteCountry(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]bool{"deleted": deleted})
}

// GetStatus handles GET /status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, status)
}

// GetSummaryImage handles GET /countries/image
func (h *Handler) GetSummaryImage(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.SummaryImage(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write image response", zap.Error(err))
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

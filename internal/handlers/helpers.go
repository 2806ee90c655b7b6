package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"detectserver/internal/logger"
	"detectserver/internal/models"
	"detectserver/internal/repository"
)

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

// respondPipelineError maps the pipeline's failure classes to HTTP statuses.
func respondPipelineError(w http.ResponseWriter, err error, logger *logger.Logger) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrImageDecode), errors.Is(err, models.ErrDetectionFailed):
		logger.Error("Pipeline failure: %v", err)
		respondError(w, err.Error(), http.StatusInternalServerError)
	default:
		logger.Error("Unexpected failure: %v", err)
		respondError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// baseURL reconstructs the request's base address for link building,
// honoring the scheme set by a TLS-terminating proxy.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

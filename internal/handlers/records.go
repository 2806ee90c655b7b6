package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"detectserver/internal/dto"
	"detectserver/internal/logger"
	"detectserver/internal/models"
	"detectserver/internal/services"
)

// CreateRecordRequest is the payload for manual record creation.
type CreateRecordRequest struct {
	Filename   string             `json:"filename"`
	Detections []models.Detection `json:"detections"`
}

// DetectionsHandler serves the record collection: list (GET), manual create
// (POST) and point lookup (GET /detections/{id}).
func DetectionsHandler(pipeline *services.Pipeline, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idPart := strings.Trim(strings.TrimPrefix(r.URL.Path, "/detections"), "/")

		if idPart == "" {
			switch r.Method {
			case http.MethodGet:
				listRecords(w, r, pipeline, logger)
			case http.MethodPost:
				createRecord(w, r, pipeline, logger)
			default:
				respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		if r.Method != http.MethodGet {
			respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			respondError(w, "Invalid record id", http.StatusBadRequest)
			return
		}
		getRecord(w, r, pipeline, id, logger)
	}
}

func listRecords(w http.ResponseWriter, r *http.Request, pipeline *services.Pipeline, logger *logger.Logger) {
	records, err := pipeline.ListRecords()
	if err != nil {
		respondPipelineError(w, err, logger)
		return
	}
	respondJSON(w, dto.NewRecordResponseList(records, baseURL(r)), http.StatusOK)
}

func createRecord(w http.ResponseWriter, r *http.Request, pipeline *services.Pipeline, logger *logger.Logger) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	rec, err := pipeline.CreateManual(req.Filename, req.Detections)
	if err != nil {
		respondPipelineError(w, err, logger)
		return
	}
	respondJSON(w, dto.NewRecordResponse(rec, baseURL(r)), http.StatusOK)
}

func getRecord(w http.ResponseWriter, r *http.Request, pipeline *services.Pipeline, id int64, logger *logger.Logger) {
	rec, err := pipeline.GetRecord(id)
	if err != nil {
		respondPipelineError(w, err, logger)
		return
	}
	respondJSON(w, dto.NewRecordResponse(rec, baseURL(r)), http.StatusOK)
}

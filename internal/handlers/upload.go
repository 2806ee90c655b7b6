package handlers

import (
	"errors"
	"io"
	"net/http"

	"detectserver/internal/config"
	"detectserver/internal/dto"
	"detectserver/internal/logger"
	"detectserver/internal/services"
)

// UploadImageHandler accepts one multipart image upload, runs the detection
// pipeline and returns the created record.
func UploadImageHandler(pipeline *services.Pipeline, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Bound the whole request body, not just the in-memory part buffer.
		maxBytes := cfg.MaxUploadSizeMB << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				respondError(w, "Uploaded file is too large", http.StatusRequestEntityTooLarge)
				return
			}
			respondError(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, "No file uploaded", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error("Error reading upload: %v", err)
			respondError(w, "Failed to read file", http.StatusInternalServerError)
			return
		}

		rec, err := pipeline.ProcessUpload(data, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			respondPipelineError(w, err, logger)
			return
		}

		respondJSON(w, dto.NewRecordResponse(rec, baseURL(r)), http.StatusOK)
	}
}

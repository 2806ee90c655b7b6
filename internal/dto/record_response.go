package dto

import (
	"strings"
	"time"

	"detectserver/internal/models"
)

// RecordResponse is the outward JSON representation of a detection record.
type RecordResponse struct {
	ID                int64              `json:"id"`
	Filename          string             `json:"filename"`
	Detections        []models.Detection `json:"detections"`
	AnnotatedImage    *string            `json:"annotated_image"`
	AnnotatedImageURL *string            `json:"annotated_image_url"`
	Timestamp         time.Time          `json:"timestamp"`
}

// NewRecordResponse shapes a record for the API. The stored annotated-image
// path is normalized to forward slashes and joined onto the request's base
// URL; both fields stay null when no annotated image exists. Pure function,
// no I/O.
func NewRecordResponse(rec *models.DetectionRecord, baseURL string) RecordResponse {
	resp := RecordResponse{
		ID:         rec.ID,
		Filename:   rec.Filename,
		Detections: rec.Detections,
		Timestamp:  rec.Timestamp,
	}
	if resp.Detections == nil {
		resp.Detections = []models.Detection{}
	}

	if rec.AnnotatedImage != "" {
		path := strings.ReplaceAll(rec.AnnotatedImage, "\\", "/")
		url := strings.TrimRight(baseURL, "/") + "/" + path
		resp.AnnotatedImage = &path
		resp.AnnotatedImageURL = &url
	}

	return resp
}

// NewRecordResponseList shapes a list of records, preserving order.
func NewRecordResponseList(records []models.DetectionRecord, baseURL string) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, NewRecordResponse(&records[i], baseURL))
	}
	return responses
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"detectserver/internal/logger"
	"detectserver/internal/models"
	"detectserver/internal/repository"
	"detectserver/internal/services/websocket"
	"detectserver/internal/storage"
)

// Pipeline runs the upload-to-record flow: persist the original, detect,
// annotate, persist the annotated copy, create the record.
type Pipeline struct {
	store    *storage.FileStore
	detector Detector
	repo     repository.RecordRepository
	hub      *websocket.HubService
	logger   *logger.Logger
}

func NewPipeline(store *storage.FileStore, detector Detector, repo repository.RecordRepository, hub *websocket.HubService, logger *logger.Logger) *Pipeline {
	return &Pipeline{
		store:    store,
		detector: detector,
		repo:     repo,
		hub:      hub,
		logger:   logger,
	}
}

// ProcessUpload runs the full pipeline for one uploaded image. If detection
// or annotation fails, no record is created.
func (p *Pipeline) ProcessUpload(data []byte, originalName, contentType string) (*models.DetectionRecord, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: got content type %q", models.ErrInvalidInput, contentType)
	}

	storedFilename, err := p.store.SaveOriginal(data, originalName)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Stored upload as %s", storedFilename)

	detections, err := p.detector.Detect(data)
	if err != nil {
		if errors.Is(err, models.ErrImageDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrDetectionFailed, err)
	}
	if detections == nil {
		detections = []models.Detection{}
	}

	annotated, err := p.detector.Annotate(data, detections)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDetectionFailed, err)
	}

	annotatedPath, err := p.store.SaveAnnotated(annotated, storedFilename)
	if err != nil {
		return nil, err
	}

	rec := &models.DetectionRecord{
		Filename:       storedFilename,
		Detections:     detections,
		AnnotatedImage: annotatedPath,
	}
	if _, err := p.repo.Insert(rec); err != nil {
		return nil, err
	}

	p.logger.Info("Created detection record %d with %d detection(s)", rec.ID, len(rec.Detections))
	p.notifyViewers(rec)

	return rec, nil
}

// CreateManual inserts a record directly from caller-provided detections,
// without running inference or producing an annotated image.
func (p *Pipeline) CreateManual(filename string, detections []models.Detection) (*models.DetectionRecord, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", models.ErrInvalidInput)
	}
	if detections == nil {
		detections = []models.Detection{}
	}

	rec := &models.DetectionRecord{
		Filename:   filename,
		Detections: detections,
	}
	if _, err := p.repo.Insert(rec); err != nil {
		return nil, err
	}

	p.notifyViewers(rec)
	return rec, nil
}

// GetRecord fetches a single record by id.
func (p *Pipeline) GetRecord(id int64) (*models.DetectionRecord, error) {
	return p.repo.GetByID(id)
}

// ListRecords fetches all records in insertion order.
func (p *Pipeline) ListRecords() ([]models.DetectionRecord, error) {
	return p.repo.GetAll()
}

// notifyViewers pushes the new record to connected websocket clients.
func (p *Pipeline) notifyViewers(rec *models.DetectionRecord) {
	if p.hub == nil || p.hub.GetClientCount() == 0 {
		return
	}

	message, err := json.Marshal(rec)
	if err != nil {
		p.logger.Error("Failed to encode record for broadcast: %v", err)
		return
	}
	p.hub.Broadcast(message)
}

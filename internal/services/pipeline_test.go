package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"detectserver/internal/logger"
	"detectserver/internal/models"
	"detectserver/internal/repository"
	"detectserver/internal/storage"
)

type fakeDetector struct {
	detections  []models.Detection
	detectErr   error
	annotateErr error
}

func (f *fakeDetector) Detect(imageBytes []byte) ([]models.Detection, error) {
	if f.detectErr != nil {
		return nil, f.detectErr
	}
	return f.detections, nil
}

func (f *fakeDetector) Annotate(imageBytes []byte, detections []models.Detection) ([]byte, error) {
	if f.annotateErr != nil {
		return nil, f.annotateErr
	}
	if len(detections) == 0 {
		return imageBytes, nil
	}
	return append([]byte("annotated:"), imageBytes...), nil
}

type memoryRepository struct {
	records []models.DetectionRecord
	nextID  int64
}

func (m *memoryRepository) Insert(rec *models.DetectionRecord) (int64, error) {
	m.nextID++
	rec.ID = m.nextID
	m.records = append(m.records, *rec)
	return rec.ID, nil
}

func (m *memoryRepository) GetByID(id int64) (*models.DetectionRecord, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryRepository) GetAll() ([]models.DetectionRecord, error) {
	return m.records, nil
}

func newTestPipeline(t *testing.T, detector Detector) (*Pipeline, *memoryRepository, *storage.FileStore) {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	repo := &memoryRepository{}
	log := logger.NewLogger(t.TempDir())

	return NewPipeline(store, detector, repo, nil, log), repo, store
}

func TestPipeline_ProcessUpload_RejectsNonImage(t *testing.T) {
	pipeline, repo, store := newTestPipeline(t, &fakeDetector{})

	_, err := pipeline.ProcessUpload([]byte("just text"), "notes.txt", "text/plain")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	// No side effects: no files written, no record created
	entries, readErr := os.ReadDir(store.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
	assert.Empty(t, repo.records)
}

func TestPipeline_ProcessUpload_Success(t *testing.T) {
	detections := []models.Detection{
		{Label: "person", Confidence: 0.98, Box: [4]int{50, 50, 150, 200}},
		{Label: "dog", Confidence: 0.87, Box: [4]int{200, 80, 300, 220}},
	}
	pipeline, repo, store := newTestPipeline(t, &fakeDetector{detections: detections})

	rec, err := pipeline.ProcessUpload([]byte("image-bytes"), "my dog.jpg", "image/jpeg")
	require.NoError(t, err)

	// Detections stored in model output order
	assert.Equal(t, detections, rec.Detections)

	// Exactly one original and one annotated file
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Annotated reference names a file that exists
	assert.Equal(t, filepath.ToSlash(filepath.Join(store.Dir(), "predicted_"+rec.Filename)), rec.AnnotatedImage)
	_, err = os.Stat(rec.AnnotatedImage)
	require.NoError(t, err)

	// Exactly one record, readable back
	require.Len(t, repo.records, 1)
	got, err := pipeline.GetRecord(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Filename, got.Filename)
}

func TestPipeline_ProcessUpload_DistinctRecordsForIdenticalInput(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t, &fakeDetector{})

	first, err := pipeline.ProcessUpload([]byte("same"), "cat.jpg", "image/png")
	require.NoError(t, err)
	second, err := pipeline.ProcessUpload([]byte("same"), "cat.jpg", "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.records, 2)
}

func TestPipeline_ProcessUpload_NoRecordOnDetectionFailure(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t, &fakeDetector{detectErr: errors.New("model exploded")})

	_, err := pipeline.ProcessUpload([]byte("image-bytes"), "cat.jpg", "image/jpeg")
	assert.ErrorIs(t, err, models.ErrDetectionFailed)
	assert.Contains(t, err.Error(), "model exploded")
	assert.Empty(t, repo.records)
}

func TestPipeline_ProcessUpload_DecodeFailurePassesThrough(t *testing.T) {
	decodeErr := fmt.Errorf("%w: bad bytes", models.ErrImageDecode)
	pipeline, repo, _ := newTestPipeline(t, &fakeDetector{detectErr: decodeErr})

	_, err := pipeline.ProcessUpload([]byte("garbage"), "cat.jpg", "image/jpeg")
	assert.ErrorIs(t, err, models.ErrImageDecode)
	assert.NotErrorIs(t, err, models.ErrDetectionFailed)
	assert.Empty(t, repo.records)
}

func TestPipeline_ProcessUpload_NoRecordOnAnnotateFailure(t *testing.T) {
	detector := &fakeDetector{
		detections:  []models.Detection{{Label: "cat", Confidence: 0.9, Box: [4]int{1, 2, 3, 4}}},
		annotateErr: errors.New("draw failed"),
	}
	pipeline, repo, _ := newTestPipeline(t, detector)

	_, err := pipeline.ProcessUpload([]byte("image-bytes"), "cat.jpg", "image/jpeg")
	assert.ErrorIs(t, err, models.ErrDetectionFailed)
	assert.Empty(t, repo.records)
}

func TestPipeline_ProcessUpload_EmptyDetections(t *testing.T) {
	pipeline, _, store := newTestPipeline(t, &fakeDetector{})

	rec, err := pipeline.ProcessUpload([]byte("image-bytes"), "empty.jpg", "image/jpeg")
	require.NoError(t, err)

	require.NotNil(t, rec.Detections)
	assert.Empty(t, rec.Detections)

	// Original/annotated pairing still holds
	assert.NotEmpty(t, rec.AnnotatedImage)
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPipeline_CreateManual(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t, &fakeDetector{})

	rec, err := pipeline.CreateManual("manual.jpg", nil)
	require.NoError(t, err)

	assert.Equal(t, "manual.jpg", rec.Filename)
	require.NotNil(t, rec.Detections)
	assert.Empty(t, rec.Detections)
	assert.Empty(t, rec.AnnotatedImage)
	assert.Len(t, repo.records, 1)
}

func TestPipeline_CreateManual_RequiresFilename(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t, &fakeDetector{})

	_, err := pipeline.CreateManual("", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Empty(t, repo.records)
}

func TestPipeline_GetRecord_NotFound(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t, &fakeDetector{})

	_, err := pipeline.GetRecord(42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

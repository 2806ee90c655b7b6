package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"detectserver/internal/models"
	"detectserver/internal/repository"
)

// RecordRepository implements repository.RecordRepository for SQLite.
// Detections are stored as a JSON column alongside the record.
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a new SQLite record repository.
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Insert adds a new detection record, assigning id and timestamp on rec.
func (r *RecordRepository) Insert(rec *models.DetectionRecord) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if rec.Detections == nil {
		rec.Detections = []models.Detection{}
	}

	detectionsJSON, err := json.Marshal(rec.Detections)
	if err != nil {
		return 0, fmt.Errorf("failed to encode detections: %w", err)
	}

	annotated := sql.NullString{String: rec.AnnotatedImage, Valid: rec.AnnotatedImage != ""}
	timestamp := time.Now().UTC()

	result, err := r.db.Conn().Exec(`
		INSERT INTO detections (filename, detections, annotated_image, timestamp)
		VALUES (?, ?, ?, ?)
	`, rec.Filename, string(detectionsJSON), annotated, timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to insert detection record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	rec.ID = id
	rec.Timestamp = timestamp
	return id, nil
}

// GetByID retrieves a single record or repository.ErrNotFound.
func (r *RecordRepository) GetByID(id int64) (*models.DetectionRecord, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`
		SELECT id, filename, detections, annotated_image, timestamp
		FROM detections WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query detection record: %w", err)
	}

	return rec, nil
}

// GetAll retrieves all records in insertion order.
func (r *RecordRepository) GetAll() ([]models.DetectionRecord, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, filename, detections, annotated_image, timestamp
		FROM detections ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query detection records: %w", err)
	}
	defer rows.Close()

	records := []models.DetectionRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detection record: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.DetectionRecord, error) {
	var rec models.DetectionRecord
	var detectionsJSON string
	var annotated sql.NullString

	if err := row.Scan(&rec.ID, &rec.Filename, &detectionsJSON, &annotated, &rec.Timestamp); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(detectionsJSON), &rec.Detections); err != nil {
		return nil, fmt.Errorf("failed to decode detections: %w", err)
	}
	if rec.Detections == nil {
		rec.Detections = []models.Detection{}
	}
	rec.AnnotatedImage = annotated.String

	return &rec, nil
}

package repository

import (
	"errors"

	"detectserver/internal/models"
)

// ErrNotFound is returned by point lookups for ids that were never created.
var ErrNotFound = errors.New("detection record not found")

// RecordRepository defines the persistence boundary for detection records.
// Records are created once and read back; there are no update or delete
// operations.
type RecordRepository interface {
	// Insert persists the record atomically, assigning its id and
	// timestamp on the passed value.
	Insert(rec *models.DetectionRecord) (int64, error)

	// GetByID returns the full record, or ErrNotFound.
	GetByID(id int64) (*models.DetectionRecord, error)

	// GetAll returns all records in insertion order.
	GetAll() ([]models.DetectionRecord, error)
}

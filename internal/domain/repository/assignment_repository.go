package repository

import (
	"errors"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSlotConflict is returned when a conditional write finds a target slot
// already filled. The run is never partially applied.
var ErrSlotConflict = errors.New("duty slot already filled")

type AssignmentRepository interface {
	// FindInRange returns assignments whose slot date falls in [start, end],
	// with the duty slot loaded.
	FindInRange(db *gorm.DB, start, end time.Time) ([]entity.Assignment, error)
	FindPinnedInRange(db *gorm.DB, start, end time.Time) ([]entity.Assignment, error)
	FindByStaffSince(db *gorm.DB, staffID uuid.UUID, since time.Time) ([]entity.Assignment, error)
	FindByRunID(db *gorm.DB, runID uuid.UUID) ([]entity.Assignment, error)
	// CreatePinned inserts a manual pin conditionally; ErrSlotConflict when
	// the slot is taken.
	CreatePinned(db *gorm.DB, assignment *entity.Assignment) error
	// PublishRun atomically persists a run and its assignment set, replacing
	// superseded non-pinned assignments in the run's range. Conditional
	// writes detect slots filled between validation and commit; on any
	// conflict the whole transaction rolls back with ErrSlotConflict.
	PublishRun(db *gorm.DB, run *entity.ScheduleRun, assignments []entity.Assignment) error
}

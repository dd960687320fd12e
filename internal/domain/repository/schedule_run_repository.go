package repository

import (
	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRunRepository interface {
	// Create persists a run row together with its failure records, used for
	// failed runs; published runs go through AssignmentRepository.PublishRun.
	Create(db *gorm.DB, run *entity.ScheduleRun) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleRun, error)
	FindAll(db *gorm.DB) ([]entity.ScheduleRun, error)
}

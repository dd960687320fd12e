package repository

import (
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffQualificationRepository interface {
	Create(db *gorm.DB, record *entity.StaffQualification) error
	FindActive(db *gorm.DB, staffID uuid.UUID, qualificationID int) (*entity.StaffQualification, error)
	FindByStaffID(db *gorm.DB, staffID uuid.UUID) ([]entity.StaffQualification, error)
	FindAll(db *gorm.DB) ([]entity.StaffQualification, error)
	// ExpireLapsed transitions active records past their expiry date to expired.
	ExpireLapsed(db *gorm.DB, asOf time.Time) (int64, error)
}

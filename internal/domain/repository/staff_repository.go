package repository

import (
	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(db *gorm.DB, staff *entity.Staff) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Staff, error)
	FindByEmployeeNumber(db *gorm.DB, employeeNumber string) (*entity.Staff, error)
	FindAllActive(db *gorm.DB) ([]entity.Staff, error)
}

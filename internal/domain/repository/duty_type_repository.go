package repository

import (
	"hospital-duty-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type DutyTypeRepository interface {
	FindAll(db *gorm.DB) ([]entity.DutyType, error)
	FindByID(db *gorm.DB, id int) (*entity.DutyType, error)
	FindByCodes(db *gorm.DB, codes []string) ([]entity.DutyType, error)
}

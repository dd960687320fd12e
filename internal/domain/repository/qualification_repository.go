package repository

import (
	"hospital-duty-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type QualificationRepository interface {
	Save(db *gorm.DB, qualification *entity.Qualification) error
	FindByID(db *gorm.DB, id int) (*entity.Qualification, error)
	FindByCode(db *gorm.DB, code string) (*entity.Qualification, error)
	FindAll(db *gorm.DB) ([]entity.Qualification, error)
	Deactivate(db *gorm.DB, id int) (int64, error)
}

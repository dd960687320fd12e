package repository

import (
	"hospital-duty-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(db *gorm.DB, room *entity.OperatingRoom) error
	FindByID(db *gorm.DB, id int) (*entity.OperatingRoom, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.OperatingRoom, error)
	FindAllActive(db *gorm.DB) ([]entity.OperatingRoom, error)
}

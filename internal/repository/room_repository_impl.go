package repository

import (
	"errors"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type roomRepository struct{}

func NewRoomRepository() domainRepo.RoomRepository {
	return &roomRepository{}
}

func (r *roomRepository) Create(db *gorm.DB, room *entity.OperatingRoom) error {
	return db.Create(room).Error
}

func (r *roomRepository) FindByID(db *gorm.DB, id int) (*entity.OperatingRoom, error) {
	var room entity.OperatingRoom
	err := db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.OperatingRoom, error) {
	var rooms []entity.OperatingRoom
	err := db.Where("id IN ?", ids).Order("id ASC").Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindAllActive(db *gorm.DB) ([]entity.OperatingRoom, error) {
	var rooms []entity.OperatingRoom
	err := db.Where("is_active = ?", true).Order("id ASC").Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

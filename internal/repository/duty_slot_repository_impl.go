package repository

import (
	"errors"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type dutySlotRepository struct{}

func NewDutySlotRepository() domainRepo.DutySlotRepository {
	return &dutySlotRepository{}
}

func (r *dutySlotRepository) Create(db *gorm.DB, slot *entity.DutySlot) error {
	return db.Create(slot).Error
}

func (r *dutySlotRepository) FindByID(db *gorm.DB, id int) (*entity.DutySlot, error) {
	var slot entity.DutySlot
	err := db.Preload("Room").Preload("DutyType").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *dutySlotRepository) FindByRoomDateType(db *gorm.DB, roomID int, date time.Time, dutyTypeID int) (*entity.DutySlot, error) {
	var slot entity.DutySlot
	err := db.Where("room_id = ? AND date = ? AND duty_type_id = ?", roomID, date, dutyTypeID).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *dutySlotRepository) FindInRange(db *gorm.DB, start, end time.Time) ([]entity.DutySlot, error) {
	var slots []entity.DutySlot
	err := db.Preload("Room").Preload("DutyType").
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, room_id ASC, duty_type_id ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

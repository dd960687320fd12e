package repository

import (
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type DutySlotRepository interface {
	Create(db *gorm.DB, slot *entity.DutySlot) error
	FindByID(db *gorm.DB, id int) (*entity.DutySlot, error)
	FindByRoomDateType(db *gorm.DB, roomID int, date time.Time, dutyTypeID int) (*entity.DutySlot, error)
	FindInRange(db *gorm.DB, start, end time.Time) ([]entity.DutySlot, error)
}

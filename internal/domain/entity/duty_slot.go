package entity

import "time"

// DutySlot is one staffing need: one room, one date, one duty type.
// Capacity is always 1.
type DutySlot struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID     int       `gorm:"not null;uniqueIndex:idx_slot_room_date_type" json:"room_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_slot_room_date_type;index" json:"date"`
	DutyTypeID int       `gorm:"not null;uniqueIndex:idx_slot_room_date_type" json:"duty_type_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Room     OperatingRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	DutyType DutyType      `gorm:"foreignKey:DutyTypeID" json:"duty_type,omitempty"`
}

func (DutySlot) TableName() string {
	return "duty_slots"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Assignment places one staff member into one duty slot. The unique index on
// DutySlotID is what the publisher's conditional writes lean on: slot capacity
// is 1 and a filled slot cannot be silently refilled.
type Assignment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DutySlotID int        `gorm:"not null;uniqueIndex" json:"duty_slot_id"`
	StaffID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"staff_id"`
	RunID      *uuid.UUID `gorm:"type:uuid;index" json:"run_id,omitempty"`
	Pinned     bool       `gorm:"not null;default:false" json:"pinned"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	DutySlot DutySlot `gorm:"foreignKey:DutySlotID" json:"duty_slot,omitempty"`
	Staff    Staff    `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

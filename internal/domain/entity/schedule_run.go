package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleRunStatus string

const (
	ScheduleRunStatusPublished ScheduleRunStatus = "published"
	ScheduleRunStatusFailed    ScheduleRunStatus = "failed"
)

// ScheduleRun is an immutable record of one scheduling run. The "current"
// schedule for a range is simply the latest published run covering it.
type ScheduleRun struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RangeStart time.Time         `gorm:"type:date;not null;index" json:"range_start"`
	RangeEnd   time.Time         `gorm:"type:date;not null;index" json:"range_end"`
	Status     ScheduleRunStatus `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Failures    []ScheduleRunFailure `gorm:"foreignKey:RunID" json:"failures,omitempty"`
	Assignments []Assignment         `gorm:"foreignKey:RunID" json:"assignments,omitempty"`
}

func (ScheduleRun) TableName() string {
	return "schedule_runs"
}

// ScheduleRunFailure is one structured reason a run failed: an uncoverable
// slot, an invalid pin, or a constraint violation.
type ScheduleRunFailure struct {
	ID         int        `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"run_id"`
	DutySlotID *int       `json:"duty_slot_id,omitempty"`
	StaffID    *uuid.UUID `gorm:"type:uuid" json:"staff_id,omitempty"`
	Kind       string     `gorm:"type:varchar(30);not null" json:"kind"`
	Reason     string     `gorm:"type:text;not null" json:"reason"`
}

func (ScheduleRunFailure) TableName() string {
	return "schedule_run_failures"
}

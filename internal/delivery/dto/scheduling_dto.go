package dto

import (
	"time"

	"github.com/google/uuid"
)

type RunSchedulingRequest struct {
	RangeStart string `json:"range_start" validate:"required,datetime=2006-01-02"`
	RangeEnd   string `json:"range_end" validate:"required,datetime=2006-01-02"`
	// Optional policy overrides; nil falls back to configured defaults.
	MaxConsecutiveDays *int     `json:"max_consecutive_days,omitempty" validate:"omitempty,gte=0"`
	StackableDutyTypes []string `json:"stackable_duty_types,omitempty"`
}

type RunFailureResponse struct {
	Kind       string  `json:"kind"`
	DutySlotID *int    `json:"duty_slot_id,omitempty"`
	StaffID    *string `json:"staff_id,omitempty"`
	Reason     string  `json:"reason"`
}

type AssignmentResponse struct {
	ID         uuid.UUID `json:"id"`
	DutySlotID int       `json:"duty_slot_id"`
	StaffID    uuid.UUID `json:"staff_id"`
	Pinned     bool      `json:"pinned"`
	Date       string    `json:"date,omitempty"`
	RoomID     int       `json:"room_id,omitempty"`
	DutyTypeID int       `json:"duty_type_id,omitempty"`
}

type ScheduleRunResponse struct {
	ID          uuid.UUID            `json:"id"`
	RangeStart  string               `json:"range_start"`
	RangeEnd    string               `json:"range_end"`
	Status      string               `json:"status"`
	Failures    []RunFailureResponse `json:"failures,omitempty"`
	Assignments []AssignmentResponse `json:"assignments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type ScheduleRunListResponse struct {
	Runs  []ScheduleRunResponse `json:"runs"`
	Total int                   `json:"total"`
}

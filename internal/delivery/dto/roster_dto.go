package dto

import "time"

type CreateRoomRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Specialty string `json:"specialty" validate:"max=100"`
}

type RoomResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

type DutyTypeResponse struct {
	ID       int    `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type DutyTypeListResponse struct {
	DutyTypes []DutyTypeResponse `json:"duty_types"`
	Total     int                `json:"total"`
}

type CreateDutySlotRequest struct {
	RoomID     int    `json:"room_id" validate:"required"`
	DutyTypeID int    `json:"duty_type_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

type DutySlotResponse struct {
	ID         int    `json:"id"`
	RoomID     int    `json:"room_id"`
	RoomName   string `json:"room_name,omitempty"`
	DutyTypeID int    `json:"duty_type_id"`
	DutyType   string `json:"duty_type,omitempty"`
	Date       string `json:"date"`
}

type DutySlotListResponse struct {
	Slots []DutySlotResponse `json:"slots"`
	Total int                `json:"total"`
}

type PinAssignmentRequest struct {
	DutySlotID int    `json:"duty_slot_id" validate:"required"`
	StaffID    string `json:"staff_id" validate:"required,uuid"`
}

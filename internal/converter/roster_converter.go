package converter

import (
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
)

// RoomToResponse converts an OperatingRoom entity to RoomResponse DTO
func RoomToResponse(room *entity.OperatingRoom) *dto.RoomResponse {
	if room == nil {
		return nil
	}

	return &dto.RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Specialty: room.Specialty,
		IsActive:  room.IsActive != nil && *room.IsActive,
		CreatedAt: room.CreatedAt,
	}
}

// RoomsToResponses converts a slice of OperatingRoom entities to DTOs
func RoomsToResponses(rooms []entity.OperatingRoom) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = *RoomToResponse(&rooms[i])
	}
	return responses
}

// DutyTypeToResponse converts a DutyType entity to DutyTypeResponse DTO
func DutyTypeToResponse(dutyType *entity.DutyType) *dto.DutyTypeResponse {
	if dutyType == nil {
		return nil
	}

	return &dto.DutyTypeResponse{
		ID:       dutyType.ID,
		Code:     dutyType.Code,
		Name:     dutyType.Name,
		Category: string(dutyType.Category),
	}
}

// DutyTypesToResponses converts a slice of DutyType entities to DTOs
func DutyTypesToResponses(dutyTypes []entity.DutyType) []dto.DutyTypeResponse {
	responses := make([]dto.DutyTypeResponse, len(dutyTypes))
	for i := range dutyTypes {
		responses[i] = *DutyTypeToResponse(&dutyTypes[i])
	}
	return responses
}

// DutySlotToResponse converts a DutySlot entity to DutySlotResponse DTO
func DutySlotToResponse(slot *entity.DutySlot) *dto.DutySlotResponse {
	if slot == nil {
		return nil
	}

	response := &dto.DutySlotResponse{
		ID:         slot.ID,
		RoomID:     slot.RoomID,
		DutyTypeID: slot.DutyTypeID,
		Date:       slot.Date.Format("2006-01-02"),
	}

	// Include room and duty type info if preloaded
	if slot.Room.ID != 0 {
		response.RoomName = slot.Room.Name
	}
	if slot.DutyType.ID != 0 {
		response.DutyType = slot.DutyType.Code
	}

	return response
}

// DutySlotsToResponses converts a slice of DutySlot entities to DTOs
func DutySlotsToResponses(slots []entity.DutySlot) []dto.DutySlotResponse {
	responses := make([]dto.DutySlotResponse, len(slots))
	for i := range slots {
		responses[i] = *DutySlotToResponse(&slots[i])
	}
	return responses
}

package converter

import (
	"time"

	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
)

// StaffToResponse converts a Staff entity to StaffResponse DTO
func StaffToResponse(staff *entity.Staff) *dto.StaffResponse {
	if staff == nil {
		return nil
	}

	return &dto.StaffResponse{
		ID:              staff.ID,
		EmployeeNumber:  staff.EmployeeNumber,
		FullName:        staff.FullName,
		Department:      staff.Department,
		CareerStartDate: staff.CareerStartDate.Format("2006-01-02"),
		ExperienceYears: staff.ExperienceYears(time.Now()),
		IsActive:        staff.IsActive != nil && *staff.IsActive,
		CreatedAt:       staff.CreatedAt,
	}
}

// StaffToResponses converts a slice of Staff entities to StaffResponse DTOs
func StaffToResponses(staff []entity.Staff) []dto.StaffResponse {
	responses := make([]dto.StaffResponse, len(staff))
	for i := range staff {
		responses[i] = *StaffToResponse(&staff[i])
	}
	return responses
}

package converter

import (
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
)

// QualificationToResponse converts a Qualification entity to QualificationResponse DTO
func QualificationToResponse(qualification *entity.Qualification) *dto.QualificationResponse {
	if qualification == nil {
		return nil
	}

	roomIDs := make([]int, len(qualification.ApplicableRooms))
	for i, room := range qualification.ApplicableRooms {
		roomIDs[i] = room.ID
	}

	return &dto.QualificationResponse{
		ID:                      qualification.ID,
		Code:                    qualification.Code,
		Name:                    qualification.Name,
		Category:                string(qualification.Category),
		Mandatory:               qualification.Mandatory,
		RequiredExperienceYears: qualification.RequiredExperienceYears,
		IsActive:                qualification.IsActive != nil && *qualification.IsActive,
		ApplicableRoomIDs:       roomIDs,
		CreatedAt:               qualification.CreatedAt,
		UpdatedAt:               qualification.UpdatedAt,
	}
}

// QualificationsToResponses converts a slice of Qualification entities to DTOs
func QualificationsToResponses(qualifications []entity.Qualification) []dto.QualificationResponse {
	responses := make([]dto.QualificationResponse, len(qualifications))
	for i := range qualifications {
		responses[i] = *QualificationToResponse(&qualifications[i])
	}
	return responses
}

// StaffQualificationToResponse converts a StaffQualification entity to its DTO
func StaffQualificationToResponse(sq *entity.StaffQualification) *dto.StaffQualificationResponse {
	if sq == nil {
		return nil
	}

	response := &dto.StaffQualificationResponse{
		ID:              sq.ID,
		StaffID:         sq.StaffID.String(),
		QualificationID: sq.QualificationID,
		ObtainedDate:    sq.ObtainedDate.Format("2006-01-02"),
		Status:          string(sq.Status),
		CreatedAt:       sq.CreatedAt,
	}

	if sq.ExpiryDate != nil {
		expiry := sq.ExpiryDate.Format("2006-01-02")
		response.ExpiryDate = &expiry
	}

	// Include qualification info if preloaded
	if sq.Qualification.ID != 0 {
		response.Code = sq.Qualification.Code
		response.Name = sq.Qualification.Name
	}

	return response
}

// StaffQualificationsToResponses converts a slice of StaffQualification entities to DTOs
func StaffQualificationsToResponses(sqs []entity.StaffQualification) []dto.StaffQualificationResponse {
	responses := make([]dto.StaffQualificationResponse, len(sqs))
	for i := range sqs {
		responses[i] = *StaffQualificationToResponse(&sqs[i])
	}
	return responses
}

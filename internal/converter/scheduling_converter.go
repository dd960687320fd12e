package converter

import (
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
)

// AssignmentToResponse converts an Assignment entity to AssignmentResponse DTO
func AssignmentToResponse(assignment *entity.Assignment) *dto.AssignmentResponse {
	if assignment == nil {
		return nil
	}

	response := &dto.AssignmentResponse{
		ID:         assignment.ID,
		DutySlotID: assignment.DutySlotID,
		StaffID:    assignment.StaffID,
		Pinned:     assignment.Pinned,
	}

	// Include slot info if preloaded
	if assignment.DutySlot.ID != 0 {
		response.Date = assignment.DutySlot.Date.Format("2006-01-02")
		response.RoomID = assignment.DutySlot.RoomID
		response.DutyTypeID = assignment.DutySlot.DutyTypeID
	}

	return response
}

// AssignmentsToResponses converts a slice of Assignment entities to DTOs
func AssignmentsToResponses(assignments []entity.Assignment) []dto.AssignmentResponse {
	responses := make([]dto.AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = *AssignmentToResponse(&assignments[i])
	}
	return responses
}

// ScheduleRunToResponse converts a ScheduleRun entity to ScheduleRunResponse DTO
func ScheduleRunToResponse(run *entity.ScheduleRun) *dto.ScheduleRunResponse {
	if run == nil {
		return nil
	}

	response := &dto.ScheduleRunResponse{
		ID:         run.ID,
		RangeStart: run.RangeStart.Format("2006-01-02"),
		RangeEnd:   run.RangeEnd.Format("2006-01-02"),
		Status:     string(run.Status),
		CreatedAt:  run.CreatedAt,
	}

	for _, failure := range run.Failures {
		item := dto.RunFailureResponse{
			Kind:       failure.Kind,
			DutySlotID: failure.DutySlotID,
			Reason:     failure.Reason,
		}
		if failure.StaffID != nil {
			staffID := failure.StaffID.String()
			item.StaffID = &staffID
		}
		response.Failures = append(response.Failures, item)
	}

	return response
}

// ScheduleRunsToResponses converts a slice of ScheduleRun entities to DTOs
func ScheduleRunsToResponses(runs []entity.ScheduleRun) []dto.ScheduleRunResponse {
	responses := make([]dto.ScheduleRunResponse, len(runs))
	for i := range runs {
		responses[i] = *ScheduleRunToResponse(&runs[i])
	}
	return responses
}

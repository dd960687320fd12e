package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/repository"
	"hospital-duty-scheduler/internal/usecase"
	"hospital-duty-scheduler/pkg/response"
	"hospital-duty-scheduler/pkg/validator"
)

type RosterHandler struct {
	rosterUsecase *usecase.RosterUsecase
	validator     *validator.CustomValidator
}

func NewRosterHandler(rosterUsecase *usecase.RosterUsecase, validator *validator.CustomValidator) *RosterHandler {
	return &RosterHandler{
		rosterUsecase: rosterUsecase,
		validator:     validator,
	}
}

func (h *RosterHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	room, err := h.rosterUsecase.CreateRoom(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create operating room")
		return
	}

	response.Success(w, http.StatusCreated, "Operating room created successfully", room)
}

func (h *RosterHandler) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rosterUsecase.ListRooms(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list operating rooms")
		return
	}

	response.Success(w, http.StatusOK, "Operating rooms retrieved successfully", rooms)
}

func (h *RosterHandler) GetAllDutyTypes(w http.ResponseWriter, r *http.Request) {
	dutyTypes, err := h.rosterUsecase.ListDutyTypes(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list duty types")
		return
	}

	response.Success(w, http.StatusOK, "Duty types retrieved successfully", dutyTypes)
}

func (h *RosterHandler) CreateDutySlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDutySlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.rosterUsecase.CreateDutySlot(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrRoomNotFound:
			response.NotFound(w, "Operating room not found")
		case usecase.ErrDutyTypeNotFound:
			response.NotFound(w, "Duty type not found")
		case usecase.ErrSlotExists:
			response.Conflict(w, "Duty slot already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create duty slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Duty slot created successfully", slot)
}

func (h *RosterHandler) GetDutySlots(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRangeQuery(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date range, use start=YYYY-MM-DD&end=YYYY-MM-DD", nil)
		return
	}

	slots, err := h.rosterUsecase.ListDutySlots(r.Context(), start, end)
	if err != nil {
		response.InternalServerError(w, "Failed to list duty slots")
		return
	}

	response.Success(w, http.StatusOK, "Duty slots retrieved successfully", slots)
}

func (h *RosterHandler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRangeQuery(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date range, use start=YYYY-MM-DD&end=YYYY-MM-DD", nil)
		return
	}

	assignments, err := h.rosterUsecase.ListAssignments(r.Context(), start, end)
	if err != nil {
		response.InternalServerError(w, "Failed to list assignments")
		return
	}

	response.Success(w, http.StatusOK, "Assignments retrieved successfully", assignments)
}

func (h *RosterHandler) PinAssignment(w http.ResponseWriter, r *http.Request) {
	var req dto.PinAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assignment, err := h.rosterUsecase.PinAssignment(r.Context(), &req)
	if err != nil {
		switch {
		case err == usecase.ErrSlotNotFound:
			response.NotFound(w, "Duty slot not found")
		case err == usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff not found")
		case errors.Is(err, usecase.ErrStaffNotEligible):
			response.UnprocessableEntity(w, "Staff member is not eligible for this slot", err.Error())
		case errors.Is(err, repository.ErrSlotConflict):
			response.Conflict(w, "Duty slot is already filled", nil)
		default:
			response.InternalServerError(w, "Failed to pin assignment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Assignment pinned successfully", assignment)
}

func parseRangeQuery(r *http.Request) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end before start")
	}
	return start, end, nil
}

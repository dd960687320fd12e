package handler

import (
	"encoding/json"
	"net/http"

	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/usecase"
	"hospital-duty-scheduler/pkg/response"
	"hospital-duty-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StaffHandler struct {
	staffUsecase         *usecase.StaffUsecase
	qualificationUsecase *usecase.QualificationUsecase
	validator            *validator.CustomValidator
}

func NewStaffHandler(
	staffUsecase *usecase.StaffUsecase,
	qualificationUsecase *usecase.QualificationUsecase,
	validator *validator.CustomValidator,
) *StaffHandler {
	return &StaffHandler{
		staffUsecase:         staffUsecase,
		qualificationUsecase: qualificationUsecase,
		validator:            validator,
	}
}

func (h *StaffHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	staff, err := h.staffUsecase.Create(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrEmployeeNumberTaken {
			response.Conflict(w, "Employee number already in use", nil)
			return
		}
		response.InternalServerError(w, "Failed to create staff")
		return
	}

	response.Success(w, http.StatusCreated, "Staff created successfully", staff)
}

func (h *StaffHandler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staffUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list staff")
		return
	}

	response.Success(w, http.StatusOK, "Staff retrieved successfully", staff)
}

func (h *StaffHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	staff, err := h.staffUsecase.Get(r.Context(), staffID)
	if err != nil {
		if err == usecase.ErrStaffNotFound {
			response.NotFound(w, "Staff not found")
			return
		}
		response.InternalServerError(w, "Failed to get staff")
		return
	}

	response.Success(w, http.StatusOK, "Staff retrieved successfully", staff)
}

func (h *StaffHandler) AssignQualification(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	var req dto.AssignStaffQualificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.qualificationUsecase.AssignToStaff(r.Context(), staffID, &req)
	if err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff not found")
		case usecase.ErrQualificationNotFound:
			response.NotFound(w, "Qualification not found")
		case usecase.ErrQualificationInactive:
			response.UnprocessableEntity(w, "Qualification is deactivated", nil)
		case usecase.ErrQualificationHeld:
			response.Conflict(w, "Staff member already holds this qualification", nil)
		case usecase.ErrInvalidExpiry:
			response.Error(w, http.StatusBadRequest, "Expiry date must be after obtained date", nil)
		default:
			response.InternalServerError(w, "Failed to assign qualification")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Qualification assigned successfully", record)
}

func (h *StaffHandler) GetStaffQualifications(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	records, err := h.qualificationUsecase.ListForStaff(r.Context(), staffID)
	if err != nil {
		if err == usecase.ErrStaffNotFound {
			response.NotFound(w, "Staff not found")
			return
		}
		response.InternalServerError(w, "Failed to list staff qualifications")
		return
	}

	response.Success(w, http.StatusOK, "Staff qualifications retrieved successfully", records)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/usecase"
	"hospital-duty-scheduler/pkg/response"
	"hospital-duty-scheduler/pkg/validator"

	"github.com/gorilla/mux"
)

type QualificationHandler struct {
	qualificationUsecase *usecase.QualificationUsecase
	validator            *validator.CustomValidator
}

func NewQualificationHandler(qualificationUsecase *usecase.QualificationUsecase, validator *validator.CustomValidator) *QualificationHandler {
	return &QualificationHandler{
		qualificationUsecase: qualificationUsecase,
		validator:            validator,
	}
}

func (h *QualificationHandler) SaveQualification(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveQualificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	qualification, err := h.qualificationUsecase.Save(r.Context(), &req)
	if err != nil {
		var configErr *usecase.ConfigurationError
		switch {
		case errors.As(err, &configErr):
			response.UnprocessableEntity(w, "Invalid qualification configuration", configErr.Problems)
		case err == usecase.ErrQualificationCodeTaken:
			response.Conflict(w, "Qualification code already in use", nil)
		default:
			response.InternalServerError(w, "Failed to save qualification")
		}
		return
	}

	response.Success(w, http.StatusOK, "Qualification saved successfully", qualification)
}

func (h *QualificationHandler) GetAllQualifications(w http.ResponseWriter, r *http.Request) {
	qualifications, err := h.qualificationUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list qualifications")
		return
	}

	response.Success(w, http.StatusOK, "Qualifications retrieved successfully", qualifications)
}

func (h *QualificationHandler) DeactivateQualification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid qualification ID", nil)
		return
	}

	if err := h.qualificationUsecase.Deactivate(r.Context(), id); err != nil {
		if err == usecase.ErrQualificationNotFound {
			response.NotFound(w, "Qualification not found")
			return
		}
		response.InternalServerError(w, "Failed to deactivate qualification")
		return
	}

	response.Success(w, http.StatusOK, "Qualification deactivated successfully", nil)
}

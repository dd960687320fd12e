package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
	"hospital-duty-scheduler/internal/domain/repository"
	"hospital-duty-scheduler/internal/service"
	"hospital-duty-scheduler/internal/usecase"
	"hospital-duty-scheduler/pkg/response"
	"hospital-duty-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SchedulingHandler struct {
	schedulingUsecase *usecase.SchedulingUsecase
	validator         *validator.CustomValidator
}

func NewSchedulingHandler(schedulingUsecase *usecase.SchedulingUsecase, validator *validator.CustomValidator) *SchedulingHandler {
	return &SchedulingHandler{
		schedulingUsecase: schedulingUsecase,
		validator:         validator,
	}
}

func (h *SchedulingHandler) RunScheduling(w http.ResponseWriter, r *http.Request) {
	var req dto.RunSchedulingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	run, err := h.schedulingUsecase.Run(r.Context(), &req)
	if err != nil {
		var configErr *usecase.ConfigurationError
		switch {
		case err == usecase.ErrInvalidRange:
			response.Error(w, http.StatusBadRequest, "Range end must not be before range start", nil)
		case err == usecase.ErrNoSlotsInRange:
			response.UnprocessableEntity(w, "No duty slots in the requested range", nil)
		case errors.As(err, &configErr):
			response.UnprocessableEntity(w, "Invalid scheduling configuration", configErr.Problems)
		case errors.Is(err, service.ErrRunInProgress):
			response.Conflict(w, "Another scheduling run is in progress", nil)
		case errors.Is(err, repository.ErrSlotConflict):
			response.Conflict(w, "A duty slot was filled while the run was in progress, retry the run", nil)
		default:
			response.InternalServerError(w, "Failed to execute scheduling run")
		}
		return
	}

	// A failed run is persisted and reported with its structured failures.
	if run.Status == string(entity.ScheduleRunStatusFailed) {
		response.UnprocessableEntity(w, "Scheduling run failed", run)
		return
	}

	response.Success(w, http.StatusOK, "Scheduling run published successfully", run)
}

func (h *SchedulingHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid run ID", nil)
		return
	}

	run, err := h.schedulingUsecase.Get(r.Context(), runID)
	if err != nil {
		if err == usecase.ErrRunNotFound {
			response.NotFound(w, "Schedule run not found")
			return
		}
		response.InternalServerError(w, "Failed to get schedule run")
		return
	}

	response.Success(w, http.StatusOK, "Schedule run retrieved successfully", run)
}

func (h *SchedulingHandler) GetAllRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.schedulingUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list schedule runs")
		return
	}

	response.Success(w, http.StatusOK, "Schedule runs retrieved successfully", runs)
}

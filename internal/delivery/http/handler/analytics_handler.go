package handler

import (
	"net/http"
	"strconv"

	"hospital-duty-scheduler/internal/usecase"
	"hospital-duty-scheduler/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AnalyticsHandler struct {
	analyticsUsecase *usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

func (h *AnalyticsHandler) GetUserAnalytics(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return
	}

	periodMonths := 0
	if raw := r.URL.Query().Get("period_months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid period_months", nil)
			return
		}
		periodMonths = parsed
	}

	analytics, err := h.analyticsUsecase.UserAnalytics(r.Context(), staffID, periodMonths)
	if err != nil {
		if err == usecase.ErrStaffNotFound {
			response.NotFound(w, "Staff not found")
			return
		}
		response.InternalServerError(w, "Failed to build analytics")
		return
	}

	response.Success(w, http.StatusOK, "Analytics retrieved successfully", analytics)
}

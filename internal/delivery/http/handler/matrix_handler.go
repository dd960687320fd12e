package handler

import (
	"net/http"
	"time"

	"hospital-duty-scheduler/internal/usecase"
	"hospital-duty-scheduler/pkg/response"
)

type MatrixHandler struct {
	matrixUsecase *usecase.MatrixUsecase
}

func NewMatrixHandler(matrixUsecase *usecase.MatrixUsecase) *MatrixHandler {
	return &MatrixHandler{matrixUsecase: matrixUsecase}
}

func (h *MatrixHandler) GetPlacementMatrix(w http.ResponseWriter, r *http.Request) {
	var asOf time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid as_of date, use YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	matrix, err := h.matrixUsecase.Get(r.Context(), asOf)
	if err != nil {
		response.InternalServerError(w, "Failed to build placement matrix")
		return
	}

	response.Success(w, http.StatusOK, "Placement matrix retrieved successfully", matrix)
}

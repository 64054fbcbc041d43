package get_free_intervals

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getFreeIntervals "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_free_intervals"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgInvalidParams     = "некорректные параметры from/to, ожидается RFC 3339"
	msgBusinessNotFound  = "бизнес не найден"
	msgStaffNotFound     = "сотрудник не найден"
	msgInvalidRange      = "некорректный диапазон запроса"
)

type Handler struct {
	useCase GetFreeIntervalsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeIntervalsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/staff/{staffId}/free-intervals
// Query params: from, to (RFC 3339, обязательны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/staff/{id}/free-intervals - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/staff/{id}/free-intervals - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(businessID, staffID, query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/staff/{id}/free-intervals - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreeIntervals.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/staff/{id}/free-intervals - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getFreeIntervals.ErrStaffNotFound):
			h.logger.Warn("GET /businesses/{id}/staff/{id}/free-intervals - Staff not found: business_id=%d, staff_id=%d",
				businessID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getFreeIntervals.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/staff/{id}/free-intervals - Invalid range: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /businesses/{id}/staff/{id}/free-intervals - Failed to resolve intervals: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/staff/{id}/free-intervals - Intervals resolved successfully: staff_id=%d, count=%d",
		staffID, len(result.Intervals))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

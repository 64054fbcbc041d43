package create_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartTime    = "некорректный формат времени начала, ожидается RFC 3339"
	msgBusinessNotFound    = "бизнес не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "сотрудник не найден"
	msgCustomerNotFound    = "клиент не найден"
	msgSlotConflict        = "выбранный временной слот занят"
	msgInsufficientNotice  = "слишком поздно для записи на этот слот"
	msgOutsideAvailability = "слот вне рабочего графика сотрудника"
	msgEntityUnavailable   = "услуга или сотрудник недоступны"
	msgNoStaffAvailable    = "нет свободных сотрудников на выбранное время"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /businesses/{id}/appointments - Slot conflict: business_id=%d, customer_id=%d",
				businessID, req.CustomerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/appointments - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/appointments - Service not found: business_id=%d, service_id=%d",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /businesses/{id}/appointments - Staff not found: business_id=%d, staff_id=%v",
				businessID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /businesses/{id}/appointments - Customer not found: business_id=%d, customer_id=%d",
				businessID, req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createAppointment.ErrInsufficientNotice):
			h.logger.Warn("POST /businesses/{id}/appointments - Insufficient notice: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInsufficientNotice)

		case errors.Is(err, createAppointment.ErrOutsideAvailability):
			h.logger.Warn("POST /businesses/{id}/appointments - Outside availability: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, createAppointment.ErrEntityUnavailable):
			h.logger.Warn("POST /businesses/{id}/appointments - Entity unavailable: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgEntityUnavailable)

		case errors.Is(err, createAppointment.ErrNoStaffAvailable):
			h.logger.Warn("POST /businesses/{id}/appointments - No staff available: business_id=%d", businessID)
			handlers.RespondError(w, http.StatusConflict, msgNoStaffAvailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/appointments - Invalid input: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{id}/appointments - Failed to create appointment: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /businesses/{id}/appointments - Appointment created successfully: appointment_id=%d, business_id=%d, staff_id=%d",
		result.ID, businessID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

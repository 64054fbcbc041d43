package update_appointment_status

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(businessID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		BusinessID: businessID,
		Status:     r.Status,
	}
}

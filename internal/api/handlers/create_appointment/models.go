package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID     int64   `json:"serviceId"`
	StaffID       *int64  `json:"staffId,omitempty"` // nil = любой подходящий сотрудник
	CustomerID    int64   `json:"customerId"`
	StartTime     string  `json:"startTime"` // RFC 3339, например "2026-09-01T10:00:00+03:00"
	Notes         *string `json:"notes,omitempty"`
	BookingSource *string `json:"bookingSource,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	StaffID    int64  `json:"staffId"`
	CustomerID int64  `json:"customerId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`

	BufferMinutes int    `json:"bufferMinutes"`
	ServiceName   string `json:"serviceName"`
	Price         *int64 `json:"price,omitempty"`

	Notes         *string `json:"notes,omitempty"`
	BookingSource string  `json:"bookingSource"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID int64) (*createAppointment.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	source := ""
	if r.BookingSource != nil {
		source = *r.BookingSource
	}

	return &createAppointment.Request{
		BusinessID:    businessID,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		CustomerID:    r.CustomerID,
		StartTime:     startTime,
		Notes:         r.Notes,
		BookingSource: source,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		BusinessID:    resp.BusinessID,
		ServiceID:     resp.ServiceID,
		StaffID:       resp.StaffID,
		CustomerID:    resp.CustomerID,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		Status:        resp.Status,
		BufferMinutes: resp.BufferMinutes,
		ServiceName:   resp.ServiceName,
		Price:         resp.Price,
		Notes:         resp.Notes,
		BookingSource: resp.BookingSource,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID    int64     // ID бизнеса (тенант)
	ServiceID     int64     // ID услуги
	StaffID       *int64    // ID сотрудника (nil = любой подходящий)
	CustomerID    int64     // ID клиента
	StartTime     time.Time // Желаемое время начала
	Notes         *string   // Заметки (опционально)
	BookingSource string    // Источник записи (по умолчанию "online")
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	StaffID    int64
	CustomerID int64

	StartTime time.Time
	EndTime   time.Time
	Status    string

	// Денормализованные данные
	BufferMinutes int
	ServiceName   string
	Price         *int64

	Notes         *string
	BookingSource string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует доменную модель в response
func fromDomain(appt *domain.Appointment) *Response {
	resp := &Response{
		ID:            appt.ID,
		BusinessID:    appt.BusinessID,
		ServiceID:     appt.ServiceID,
		CustomerID:    appt.CustomerID,
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		Status:        string(appt.Status),
		BufferMinutes: appt.BufferMinutes,
		ServiceName:   appt.ServiceName,
		Price:         appt.Price,
		Notes:         appt.Notes,
		BookingSource: appt.BookingSource,
		CreatedAt:     appt.CreatedAt,
		UpdatedAt:     appt.UpdatedAt,
	}
	if appt.StaffID != nil {
		resp.StaffID = *appt.StaffID
	}
	return resp
}

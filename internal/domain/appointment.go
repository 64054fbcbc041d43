package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a booked service slot on a staff member's calendar
type Appointment struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	StaffID    *int64 // NULL only after the staff member is deleted (SET NULL)
	CustomerID int64

	StartTime time.Time
	EndTime   time.Time // StartTime + service duration, buffer is NOT included
	Status    AppointmentStatus

	// Denormalized at booking time so the conflict query never joins services
	BufferMinutes int
	ServiceName   string
	Price         *int64 // minor currency units, captured at booking, immutable after

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	BookingSource      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// transitions defines the appointment state machine.
// No transition is defined out of cancelled, completed or no_show.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// CanTransitionTo returns true if the state machine allows moving to next
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range transitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsActive returns true if the appointment still occupies its slot.
// Cancelled appointments free the slot; completed and no_show keep it
// occupied in history but are always in the past.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment is in a cancellable state
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// FootprintEnd returns the end of the interval the appointment occupies
// on the staff calendar: end time plus the service buffer
func (a *Appointment) FootprintEnd() time.Time {
	return a.EndTime.Add(time.Duration(a.BufferMinutes) * time.Minute)
}

// Overlaps reports whether the appointment footprint intersects
// the half-open interval [start, end)
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.FootprintEnd())
}

// AppointmentsFilter фильтр для выборки записей бизнеса
type AppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	StaffID         *int64             // Фильтр по сотруднику (опционально)
	CustomerID      *int64             // Фильтр по клиенту (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	StartDate       *time.Time         // Начало периода по start_time (опционально)
	EndDate         *time.Time         // Конец периода по start_time (опционально)
	IncludeInactive bool               // Включать ли отмененные записи
}

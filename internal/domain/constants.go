package domain

// Default booking policy values
const (
	DefaultCancellationWindowHours = 24
	DefaultBookingSource           = "online"
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MaxBufferTimeMinutes        = 240
	MaxAdvanceNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// KnownBookingSources допустимые источники записи
var KnownBookingSources = []string{"online", "phone", "walk_in"}

// ActiveStatuses статусы, при которых запись занимает слот в календаре
// Используется при проверке конфликтов
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}

// InactiveStatuses статусы, освобождающие слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

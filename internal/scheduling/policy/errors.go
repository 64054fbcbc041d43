package policy

import "errors"

// Нарушения бизнес-правил бронирования
// Каждое проверяется независимо, для успеха должны пройти все
var (
	// ErrInsufficientNotice возвращается, когда до начала записи осталось
	// меньше, чем booking_advance_notice_minutes услуги
	ErrInsufficientNotice = errors.New("policy: insufficient advance notice")

	// ErrOutsideAvailability возвращается, когда слот с буфером не помещается
	// целиком ни в один интервал доступности сотрудника
	ErrOutsideAvailability = errors.New("policy: slot is outside staff availability")

	// ErrEntityUnavailable возвращается, когда услуга или сотрудник неактивны,
	// либо сотрудник не выполняет эту услугу
	ErrEntityUnavailable = errors.New("policy: service or staff unavailable")

	// ErrCancellationWindowPassed возвращается, когда окно отмены уже закрыто
	ErrCancellationWindowPassed = errors.New("policy: cancellation window has passed")

	// ErrNotCancellable возвращается для записей в терминальных статусах
	ErrNotCancellable = errors.New("policy: appointment is not in a cancellable status")
)

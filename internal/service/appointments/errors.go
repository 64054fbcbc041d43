package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в рамках бизнеса
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	// из-за статуса (completed/cancelled/no_show)
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrCancellationWindowPassed возвращается, когда окно отмены бизнеса
	// уже закрылось
	ErrCancellationWindowPassed = errors.New("cancellation window has passed")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

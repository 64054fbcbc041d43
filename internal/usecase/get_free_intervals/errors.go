package get_free_intervals

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_free_intervals: business not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в рамках бизнеса
	ErrStaffNotFound = errors.New("get_free_intervals: staff not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_intervals: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_intervals: internal error")
)

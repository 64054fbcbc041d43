package availability

import "errors"

var (
	// ErrInvalidRange возвращается, когда конец диапазона раньше начала
	ErrInvalidRange = errors.New("availability: invalid date range")

	// ErrInternal возвращается при внутренних ошибках резолвера
	ErrInternal = errors.New("availability: internal error")
)

package create_appointment

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_appointment: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в рамках бизнеса
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в рамках бизнеса
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден в рамках бизнеса
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrInsufficientNotice возвращается при нарушении минимального
	// времени до начала записи
	ErrInsufficientNotice = errors.New("create_appointment: insufficient advance notice")

	// ErrOutsideAvailability возвращается, когда слот не помещается
	// в интервалы доступности сотрудника
	ErrOutsideAvailability = errors.New("create_appointment: slot is outside staff availability")

	// ErrEntityUnavailable возвращается, когда услуга/сотрудник неактивны
	// либо сотрудник не выполняет услугу
	ErrEntityUnavailable = errors.New("create_appointment: service or staff unavailable")

	// ErrNoStaffAvailable возвращается, когда ни один сотрудник не может
	// принять запись в выбранный слот (запрос "любой сотрудник")
	ErrNoStaffAvailable = errors.New("create_appointment: no staff available for this slot")

	// ErrSlotConflict возвращается при пересечении с существующей записью
	// или проигрыше гонки за слот - можно повторить с новым поиском слотов
	ErrSlotConflict = errors.New("create_appointment: slot conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

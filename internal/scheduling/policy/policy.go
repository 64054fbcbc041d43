package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
)

// CheckAdvanceNotice проверяет минимальное время от "сейчас" до начала записи
func CheckAdvanceNotice(service *domain.Service, candidateStart, now time.Time) error {
	notice := time.Duration(service.BookingAdvanceNoticeMinutes) * time.Minute
	if candidateStart.Sub(now) < notice {
		return fmt.Errorf("%w: must book at least %d minutes in advance",
			ErrInsufficientNotice, service.BookingAdvanceNoticeMinutes)
	}
	return nil
}

// CheckContainment проверяет, что слот с буфером целиком помещается
// в один из интервалов доступности
func CheckContainment(free []availability.Interval, candidateStart, footprintEnd time.Time) error {
	if !availability.Covers(free, candidateStart, footprintEnd) {
		return ErrOutsideAvailability
	}
	return nil
}

// CheckEntities проверяет активность услуги и сотрудника
// и что сотрудник выполняет эту услугу
func CheckEntities(service *domain.Service, staff *domain.Staff, offersService bool) error {
	if !service.IsActive {
		return fmt.Errorf("%w: service id=%d is not active", ErrEntityUnavailable, service.ID)
	}
	if !staff.IsActive {
		return fmt.Errorf("%w: staff id=%d is not active", ErrEntityUnavailable, staff.ID)
	}
	if !offersService {
		return fmt.Errorf("%w: staff id=%d does not offer service id=%d",
			ErrEntityUnavailable, staff.ID, service.ID)
	}
	return nil
}

// Validate выполняет все проверки бронирования
// free - интервалы доступности сотрудника на дату кандидата
func Validate(service *domain.Service, staff *domain.Staff, offersService bool, free []availability.Interval, candidateStart, now time.Time) error {
	if err := CheckEntities(service, staff, offersService); err != nil {
		return err
	}
	if err := CheckAdvanceNotice(service, candidateStart, now); err != nil {
		return err
	}

	candidateEnd := candidateStart.Add(time.Duration(service.DurationMinutes) * time.Minute)
	footprintEnd := candidateEnd.Add(time.Duration(service.BufferTimeMinutes) * time.Minute)

	return CheckContainment(free, candidateStart, footprintEnd)
}

// CanCancel проверяет право на отмену записи:
// статус должен быть pending или confirmed, и до начала должно
// оставаться не меньше окна отмены
func CanCancel(appt *domain.Appointment, cancellationWindowHours int, now time.Time) error {
	if !appt.CanBeCancelled() {
		return fmt.Errorf("%w: status=%s", ErrNotCancellable, appt.Status)
	}

	deadline := appt.StartTime.Add(-time.Duration(cancellationWindowHours) * time.Hour)
	if now.After(deadline) {
		return fmt.Errorf("%w: must cancel at least %d hours before start",
			ErrCancellationWindowPassed, cancellationWindowHours)
	}

	return nil
}

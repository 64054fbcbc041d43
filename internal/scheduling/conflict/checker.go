package conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках проверки конфликтов
	ErrInternal = errors.New("conflict: internal error")
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetActiveByStaffBetween возвращает неотмененные записи сотрудника,
	// чей footprint пересекает [from, to). Внутри транзакции выборка
	// блокируется через FOR UPDATE
	GetActiveByStaffBetween(ctx context.Context, businessID, staffID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// Checker проверяет кандидата на пересечение с существующими записями
type Checker struct {
	appointments AppointmentRepository
}

// NewChecker создает новый conflict checker
func NewChecker(appointments AppointmentRepository) *Checker {
	return &Checker{appointments: appointments}
}

// HasConflict возвращает true, если кандидат [candidateStart, candidateEnd)
// с буфером bufferMinutes пересекает footprint существующей записи.
// Должен вызываться на том же чтении, что используется внутри транзакции
// бронирования - иначе проверка подвержена гонкам
func (c *Checker) HasConflict(ctx context.Context, businessID, staffID int64, candidateStart, candidateEnd time.Time, bufferMinutes int) (bool, error) {
	ids, err := c.FindConflicts(ctx, businessID, staffID, candidateStart, candidateEnd, bufferMinutes)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// FindConflicts возвращает ID всех конфликтующих записей (для диагностики)
func (c *Checker) FindConflicts(ctx context.Context, businessID, staffID int64, candidateStart, candidateEnd time.Time, bufferMinutes int) ([]int64, error) {
	footprintEnd := candidateEnd.Add(time.Duration(bufferMinutes) * time.Minute)

	existing, err := c.appointments.GetActiveByStaffBetween(ctx, businessID, staffID, candidateStart, footprintEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	return Overlapping(existing, candidateStart, footprintEnd), nil
}

// Overlapping возвращает ID записей, чей footprint пересекает [start, end)
//
// Интервалы полуоткрытые: два интервала конфликтуют только при
// a.start < b.end && b.start < a.end. Записи "впритык" без буфера
// не конфликтуют - зазор между ними создает именно буфер
func Overlapping(appointments []*domain.Appointment, start, end time.Time) []int64 {
	ids := make([]int64, 0)

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if appt.Overlaps(start, end) {
			ids = append(ids, appt.ID)
		}
	}

	return ids
}

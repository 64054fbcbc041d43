package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
)

func at(h, m int) time.Time {
	return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
}

func testService() *domain.Service {
	return &domain.Service{
		ID:                          1,
		DurationMinutes:             30,
		BufferTimeMinutes:           10,
		BookingAdvanceNoticeMinutes: 60,
		IsActive:                    true,
	}
}

func testStaff() *domain.Staff {
	return &domain.Staff{ID: 1, IsActive: true}
}

func TestCheckAdvanceNotice(t *testing.T) {
	service := testService() // нотис 60 минут
	now := at(9, 0)

	// За 30 минут - мало
	assert.ErrorIs(t, CheckAdvanceNotice(service, at(9, 30), now), ErrInsufficientNotice)

	// Ровно за 60 минут - граница допустима
	assert.NoError(t, CheckAdvanceNotice(service, at(10, 0), now))

	// За 61 минуту - допустимо
	assert.NoError(t, CheckAdvanceNotice(service, at(10, 1), now))

	// Начало в прошлом
	assert.ErrorIs(t, CheckAdvanceNotice(service, at(8, 0), now), ErrInsufficientNotice)
}

func TestCheckContainment(t *testing.T) {
	free := []availability.Interval{{Start: at(9, 0), End: at(13, 0)}}

	assert.NoError(t, CheckContainment(free, at(9, 0), at(9, 40)))
	assert.NoError(t, CheckContainment(free, at(12, 20), at(13, 0)), "footprint ending exactly at shift end")
	assert.ErrorIs(t, CheckContainment(free, at(12, 30), at(13, 10)), ErrOutsideAvailability)
	assert.ErrorIs(t, CheckContainment(nil, at(9, 0), at(9, 40)), ErrOutsideAvailability)
}

func TestCheckEntities(t *testing.T) {
	assert.NoError(t, CheckEntities(testService(), testStaff(), true))

	inactive := testService()
	inactive.IsActive = false
	assert.ErrorIs(t, CheckEntities(inactive, testStaff(), true), ErrEntityUnavailable)

	fired := testStaff()
	fired.IsActive = false
	assert.ErrorIs(t, CheckEntities(testService(), fired, true), ErrEntityUnavailable)

	assert.ErrorIs(t, CheckEntities(testService(), testStaff(), false), ErrEntityUnavailable)
}

func TestValidate_FootprintMustFit(t *testing.T) {
	service := testService() // 30 минут + 10 буфер
	free := []availability.Interval{{Start: at(9, 0), End: at(12, 0)}}
	now := at(8, 0)

	// 11:00-11:30, footprint до 11:40 - помещается
	assert.NoError(t, Validate(service, testStaff(), true, free, at(11, 0), now))

	// 11:30-12:00, footprint до 12:10 - буфер вылезает за смену
	assert.ErrorIs(t, Validate(service, testStaff(), true, free, at(11, 30), now), ErrOutsideAvailability)
}

func TestCanCancel(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	window := 24 // часов

	pending := &domain.Appointment{Status: domain.StatusPending, StartTime: start}
	confirmed := &domain.Appointment{Status: domain.StatusConfirmed, StartTime: start}
	completed := &domain.Appointment{Status: domain.StatusCompleted, StartTime: start}
	cancelled := &domain.Appointment{Status: domain.StatusCancelled, StartTime: start}

	deadline := start.Add(-24 * time.Hour)

	// До дедлайна - можно
	assert.NoError(t, CanCancel(pending, window, deadline.Add(-time.Minute)))
	assert.NoError(t, CanCancel(confirmed, window, deadline.Add(-time.Minute)))

	// Ровно на дедлайне - еще можно
	assert.NoError(t, CanCancel(pending, window, deadline))

	// Минутой позже - окно закрылось
	assert.ErrorIs(t, CanCancel(pending, window, deadline.Add(time.Minute)), ErrCancellationWindowPassed)

	// Неотменяемые статусы
	assert.ErrorIs(t, CanCancel(completed, window, deadline.Add(-time.Hour)), ErrNotCancellable)
	assert.ErrorIs(t, CanCancel(cancelled, window, deadline.Add(-time.Hour)), ErrNotCancellable)
}

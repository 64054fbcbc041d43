package conflict

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func at(h, m int) time.Time {
	return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
}

func appt(id int64, start, end time.Time, buffer int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:            id,
		StartTime:     start,
		EndTime:       end,
		BufferMinutes: buffer,
		Status:        status,
	}
}

func TestOverlapping_BufferExtendsFootprint(t *testing.T) {
	// Запись 09:00-09:30 с буфером 10 минут: footprint 09:00-09:40
	existing := []*domain.Appointment{
		appt(1, at(9, 0), at(9, 30), 10, domain.StatusConfirmed),
	}

	// Кандидат 09:35-10:05 попадает в буфер
	assert.Equal(t, []int64{1}, Overlapping(existing, at(9, 35), at(10, 5)))

	// Кандидат ровно от конца footprint - полуоткрытые интервалы не пересекаются
	assert.Empty(t, Overlapping(existing, at(9, 40), at(10, 10)))
}

func TestOverlapping_BackToBackWithoutBuffer(t *testing.T) {
	existing := []*domain.Appointment{
		appt(1, at(9, 0), at(10, 0), 0, domain.StatusConfirmed),
	}

	// Впритык без буфера - не конфликт
	assert.Empty(t, Overlapping(existing, at(10, 0), at(11, 0)))
	assert.Empty(t, Overlapping(existing, at(8, 0), at(9, 0)))

	// Пересечение на минуту - конфликт
	assert.Equal(t, []int64{1}, Overlapping(existing, at(9, 59), at(11, 0)))
}

func TestOverlapping_CancelledIgnored(t *testing.T) {
	existing := []*domain.Appointment{
		appt(1, at(9, 0), at(10, 0), 0, domain.StatusCancelled),
		appt(2, at(9, 0), at(10, 0), 0, domain.StatusCompleted),
		appt(3, at(9, 0), at(10, 0), 0, domain.StatusPending),
	}

	// Отмененная запись освобождает слот, completed и pending - держат
	got := Overlapping(existing, at(9, 30), at(10, 30))
	assert.Equal(t, []int64{2, 3}, got)
}

func TestOverlapping_CandidateInsideExisting(t *testing.T) {
	existing := []*domain.Appointment{
		appt(1, at(9, 0), at(12, 0), 0, domain.StatusConfirmed),
	}

	assert.Equal(t, []int64{1}, Overlapping(existing, at(10, 0), at(10, 30)))
}

type fakeApptRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeApptRepo) GetActiveByStaffBetween(_ context.Context, _, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func TestChecker_FindConflicts(t *testing.T) {
	repo := &fakeApptRepo{appointments: []*domain.Appointment{
		appt(7, at(9, 0), at(9, 30), 10, domain.StatusConfirmed),
	}}
	checker := NewChecker(repo)

	// Кандидат 09:35 длительностью 30 минут с собственным буфером 5 минут
	ids, err := checker.FindConflicts(context.Background(), 1, 1, at(9, 35), at(10, 5), 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, ids)

	has, err := checker.HasConflict(context.Background(), 1, 1, at(11, 0), at(11, 30), 5)
	require.NoError(t, err)
	assert.False(t, has)
}

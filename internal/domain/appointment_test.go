package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from Appointment
		to   AppointmentStatus
		want bool
	}{
		{Appointment{Status: StatusPending}, StatusConfirmed, true},
		{Appointment{Status: StatusPending}, StatusCancelled, true},
		{Appointment{Status: StatusPending}, StatusCompleted, false},
		{Appointment{Status: StatusPending}, StatusNoShow, false},
		{Appointment{Status: StatusConfirmed}, StatusCompleted, true},
		{Appointment{Status: StatusConfirmed}, StatusNoShow, true},
		{Appointment{Status: StatusConfirmed}, StatusCancelled, true},
		{Appointment{Status: StatusConfirmed}, StatusPending, false},
		{Appointment{Status: StatusCompleted}, StatusCancelled, false},
		{Appointment{Status: StatusCancelled}, StatusConfirmed, false},
		{Appointment{Status: StatusNoShow}, StatusCompleted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from.Status, tt.to)
	}
}

func TestAppointment_FootprintEnd(t *testing.T) {
	end := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	appt := Appointment{EndTime: end, BufferMinutes: 10}

	assert.Equal(t, end.Add(10*time.Minute), appt.FootprintEnd())

	appt.BufferMinutes = 0
	assert.Equal(t, end, appt.FootprintEnd())
}

func TestAppointment_Overlaps(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	appt := Appointment{
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		BufferMinutes: 10, // footprint 09:00-09:40
	}

	assert.True(t, appt.Overlaps(start.Add(35*time.Minute), start.Add(65*time.Minute)))
	assert.False(t, appt.Overlaps(start.Add(40*time.Minute), start.Add(70*time.Minute)), "half-open boundary")
	assert.False(t, appt.Overlaps(start.Add(-time.Hour), start), "half-open boundary from the left")
	assert.True(t, appt.Overlaps(start.Add(-time.Hour), start.Add(time.Minute)))
}

func TestTimeOff_Covers(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	timeOff := TimeOff{StartDate: start, EndDate: end}

	assert.True(t, timeOff.Covers(start), "start date inclusive")
	assert.True(t, timeOff.Covers(end), "end date inclusive")
	assert.True(t, timeOff.Covers(start.AddDate(0, 0, 1)))
	assert.False(t, timeOff.Covers(start.AddDate(0, 0, -1)))
	assert.False(t, timeOff.Covers(end.AddDate(0, 0, 1)))

	// Дата в другой таймзоне сравнивается по календарному дню
	msk := time.FixedZone("MSK", 3*3600)
	assert.True(t, timeOff.Covers(time.Date(2026, 9, 3, 10, 0, 0, 0, msk)))
}

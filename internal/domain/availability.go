package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AvailabilityRule is a recurring weekly working window of a staff member.
// Multiple rules per day are split shifts; overlapping rules are merged
// by the resolver, not rejected.
type AvailabilityRule struct {
	ID          int64
	StaffID     int64
	DayOfWeek   int // 0 = Sunday ... 6 = Saturday, matches time.Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool // false marks the day off without deleting the row

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeOff is a date-range exception overriding availability rules.
// Only approved time off blocks availability.
type TimeOff struct {
	ID         int64
	StaffID    int64
	StartDate  time.Time // inclusive calendar date
	EndDate    time.Time // inclusive calendar date
	Reason     *string
	IsApproved bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the time off covers the given calendar date.
// Dates are compared by calendar components, ignoring location offsets.
func (t *TimeOff) Covers(date time.Time) bool {
	d := dateOrdinal(date)
	return d >= dateOrdinal(t.StartDate) && d <= dateOrdinal(t.EndDate)
}

func dateOrdinal(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

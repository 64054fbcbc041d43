package domain

import "time"

// Business is the tenant root. Every other entity is partitioned by BusinessID.
type Business struct {
	ID       int64
	Name     string
	Slug     string
	Timezone string
	IsActive bool

	// Booking policy
	CancellationWindowHours int  // how long before start a cancellation is still allowed
	RequireConfirmation     bool // false = new appointments are created as confirmed

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the business timezone, falling back to UTC
// for unknown or empty values
func (b *Business) Location() *time.Location {
	if b.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Service is a bookable offering of a business
type Service struct {
	ID         int64
	BusinessID int64
	Name       string

	DurationMinutes             int // > 0
	BufferTimeMinutes           int // >= 0, cooldown reserved after the appointment
	BookingAdvanceNoticeMinutes int // >= 0, minimum lead time from now to start

	Price    *int64
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FootprintMinutes returns the staff-time footprint of one booking:
// service duration plus the buffer
func (s *Service) FootprintMinutes() int {
	return s.DurationMinutes + s.BufferTimeMinutes
}

// Staff is a schedulable resource belonging to a business
type Staff struct {
	ID         int64
	BusinessID int64
	FirstName  string
	LastName   string
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer belongs to a business and books appointments
type Customer struct {
	ID         int64
	BusinessID int64
	FirstName  string
	LastName   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// CatalogRepository интерфейс справочного репозитория (только чтение)
type CatalogRepository interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error)
	GetCustomer(ctx context.Context, businessID, customerID int64) (*domain.Customer, error)
	StaffOffersService(ctx context.Context, businessID, staffID, serviceID int64) (bool, error)
	GetStaffForService(ctx context.Context, businessID, serviceID int64) ([]*domain.Staff, error)
}

// AvailabilityResolver интерфейс резолвера доступности
type AvailabilityResolver interface {
	FreeIntervals(ctx context.Context, businessID, staffID int64, from, to time.Time, loc *time.Location) ([]availability.Interval, error)
}

// ConflictChecker интерфейс проверки конфликтов слотов
type ConflictChecker interface {
	FindConflicts(ctx context.Context, businessID, staffID int64, candidateStart, candidateEnd time.Time, bufferMinutes int) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

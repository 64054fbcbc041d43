package get_free_intervals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
)

// CatalogRepository интерфейс справочного репозитория (только чтение)
type CatalogRepository interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
	GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error)
}

// AvailabilityResolver интерфейс резолвера доступности
type AvailabilityResolver interface {
	FreeIntervals(ctx context.Context, businessID, staffID int64, from, to time.Time, loc *time.Location) ([]availability.Interval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	// GetAvailabilityRules возвращает все недельные правила сотрудника
	GetAvailabilityRules(ctx context.Context, businessID, staffID int64) ([]*domain.AvailabilityRule, error)
}

// TimeOffRepository интерфейс репозитория отгулов/отпусков
type TimeOffRepository interface {
	// GetApprovedTimeOff возвращает подтвержденные отгулы сотрудника,
	// пересекающиеся с диапазоном дат [from, to]
	GetApprovedTimeOff(ctx context.Context, businessID, staffID int64, from, to time.Time) ([]*domain.TimeOff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_free_intervals

import (
	"context"

	getFreeIntervals "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_free_intervals"
)

type GetFreeIntervalsUseCase interface {
	Execute(ctx context.Context, req *getFreeIntervals.Request) (*getFreeIntervals.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

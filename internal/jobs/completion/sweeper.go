package completion

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CompleteFinished(ctx context.Context, cutoff time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически переводит завершившиеся подтвержденные записи
// в статус completed
//
// Grace period откладывает авто-завершение, чтобы бизнес успел отметить
// no_show вручную
type Sweeper struct {
	appointmentRepo AppointmentRepository
	logger          Logger
	schedule        string
	gracePeriod     time.Duration
	runTimeout      time.Duration

	cron *cron.Cron
}

// NewSweeper создает новый sweeper
// schedule - выражение cron, например "*/10 * * * *"
func NewSweeper(appointmentRepo AppointmentRepository, logger Logger, schedule string, gracePeriod time.Duration) *Sweeper {
	return &Sweeper{
		appointmentRepo: appointmentRepo,
		logger:          logger,
		schedule:        schedule,
		gracePeriod:     gracePeriod,
		runTimeout:      time.Minute,
	}
}

// Start запускает периодический запуск sweeper
func (s *Sweeper) Start() error {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("completion sweeper started: schedule=%q, grace=%s", s.schedule, s.gracePeriod)
	return nil
}

// Stop останавливает sweeper и дожидается завершения текущего запуска
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("completion sweeper stopped")
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	cutoff := time.Now().Add(-s.gracePeriod)

	count, err := s.appointmentRepo.CompleteFinished(ctx, cutoff)
	if err != nil {
		s.logger.Error("completion sweeper: failed to complete finished appointments: %v", err)
		return
	}

	if count > 0 {
		s.logger.Info("completion sweeper: completed %d appointments finished before %s",
			count, cutoff.Format(time.RFC3339))
	}
}

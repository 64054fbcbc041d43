package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
//
// Создание записи выполняет отдельный usecase (оркестратор планировщика),
// здесь - чтение и жизненный цикл статусов
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID в рамках бизнеса
// Запись другого бизнеса неотличима от несуществующей
func (s *Service) GetByID(ctx context.Context, businessID, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for business=%d", id, businessID)

	appt, err := s.appointmentRepo.GetByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found for business=%d", id, businessID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// List получает записи бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, клиенту, статусу и периоду
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for business=%d, staff=%v, customer=%v, status=%v",
		req.BusinessID, req.StaffID, req.CustomerID, req.Status)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("List: invalid period for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: endDate must not precede startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for business=%d", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Confirm подтверждает запись (pending -> confirmed)
func (s *Service) Confirm(ctx context.Context, businessID, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d for business=%d", id, businessID)

	appt, err := s.getAppointment(ctx, businessID, id, "Confirm")
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(domain.StatusConfirmed) {
		s.logger.Warn("Confirm: appointment id=%d cannot be confirmed, status=%s", id, appt.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, domain.StatusConfirmed)
	}

	if err := s.updateStatus(ctx, businessID, id, domain.StatusConfirmed, "Confirm"); err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)

	appt.Status = domain.StatusConfirmed
	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись
// Проверяет статус и окно отмены бизнеса (cancellation_window_hours до начала)
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d for business=%d", id, req.BusinessID)

	appt, err := s.getAppointment(ctx, req.BusinessID, id, "Cancel")
	if err != nil {
		return err
	}

	business, err := s.catalogRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			s.logger.Warn("Cancel: business id=%d not found", req.BusinessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("Cancel: failed to get business id=%d: %v", req.BusinessID, err)
		return fmt.Errorf("%w: Cancel - failed to get business: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if err := policy.CanCancel(appt, business.CancellationWindowHours, now); err != nil {
		switch {
		case errors.Is(err, policy.ErrNotCancellable):
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
			return ErrCannotCancel
		case errors.Is(err, policy.ErrCancellationWindowPassed):
			s.logger.Warn("Cancel: cancellation window passed for appointment id=%d, start=%s",
				id, appt.StartTime.Format("2006-01-02 15:04"))
			return ErrCancellationWindowPassed
		default:
			return fmt.Errorf("%w: Cancel - policy error: %v", ErrInternal, err)
		}
	}

	if err := s.appointmentRepo.Cancel(ctx, req.BusinessID, id, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// UpdateStatus обновляет статус записи по state machine
// Для отмены используется Cancel (с проверкой окна отмены и причиной)
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s for business=%d",
		id, req.Status, req.BusinessID)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested for appointment id=%d via status update", id)
		return nil, fmt.Errorf("%w: use the cancel operation to cancel", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, req.BusinessID, id, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for appointment id=%d",
			appt.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	if err := s.updateStatus(ctx, req.BusinessID, id, newStatus, "UpdateStatus"); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)

	appt.Status = newStatus
	return models.FromDomainAppointment(appt), nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, businessID, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found for business=%d", op, id, businessID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) updateStatus(ctx context.Context, businessID, id int64, status domain.AppointmentStatus, op string) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, businessID, id, status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found during update", op, id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

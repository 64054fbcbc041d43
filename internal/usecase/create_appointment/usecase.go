package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/policy"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case создания записи - оркестратор планировщика
//
// Шаги 1-3 (справочники, политика бронирования) - чистые чтения без блокировок,
// шаги 4-6 (повторная проверка конфликта и вставка) выполняются в одной
// SERIALIZABLE транзакции с FOR UPDATE на записях сотрудника за день
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	resolver        AvailabilityResolver
	checker         ConflictChecker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	resolver AvailabilityResolver,
	checker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		resolver:        resolver,
		checker:         checker,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%d, service=%d, staff=%v, customer=%d, start=%s",
		req.BusinessID, req.ServiceID, req.StaffID, req.CustomerID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Справочные данные (тенант проверяется в каждом запросе)
	business, err := uc.catalogRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsActive {
		uc.logger.Warn("CreateAppointment: business id=%d is not active", req.BusinessID)
		return nil, fmt.Errorf("%w: business is not active", ErrEntityUnavailable)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if _, err := uc.catalogRepo.GetCustomer(ctx, req.BusinessID, req.CustomerID); err != nil {
		if errors.Is(err, catalogRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	loc := business.Location()
	candidateStart := req.StartTime
	candidateEnd := candidateStart.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 3. Выбор сотрудника и проверка политики бронирования (без блокировок)
	staff, err := uc.pickStaff(ctx, req, business, service, candidateStart, candidateEnd, now, loc)
	if err != nil {
		return nil, err
	}

	// 4-6. Повторная проверка конфликта и вставка под блокировкой
	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Защита от бронирований, прошедших проверку параллельно с шагами 1-3:
		// внутри транзакции репозиторий блокирует записи сотрудника FOR UPDATE
		conflicts, err := uc.checker.FindConflicts(txCtx, req.BusinessID, staff.ID,
			candidateStart, candidateEnd, service.BufferTimeMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateAppointment: slot conflict with appointments %v for staff=%d", conflicts, staff.ID)
			return ErrSlotConflict
		}

		status := domain.StatusPending
		if !business.RequireConfirmation {
			status = domain.StatusConfirmed
		}

		source := req.BookingSource
		if source == "" {
			source = domain.DefaultBookingSource
		}

		appt := &domain.Appointment{
			BusinessID: req.BusinessID,
			ServiceID:  service.ID,
			StaffID:    &staff.ID,
			CustomerID: req.CustomerID,
			StartTime:  candidateStart,
			EndTime:    candidateEnd,
			Status:     status,
			// Денормализация данных услуги на момент бронирования
			BufferMinutes: service.BufferTimeMinutes,
			ServiceName:   service.Name,
			Price:         service.Price,
			Notes:         req.Notes,
			BookingSource: source,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпание повторов сериализуемой транзакции - та же гонка за слот,
		// безопасно повторить запрос с новым поиском слотов
		if errors.Is(err, txmanager.ErrSerialization) || errors.Is(err, simpletxmanager.ErrSerialization) {
			uc.logger.Warn("CreateAppointment: serialization conflict for staff=%d, start=%s",
				staff.ID, candidateStart.Format(time.RFC3339))
			return nil, fmt.Errorf("%w: lost booking race: %v", ErrSlotConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, staff=%d, status=%s",
		result.ID, staff.ID, result.Status)

	return fromDomain(result), nil
}

// pickStaff возвращает сотрудника для записи
//
// При явном staffID проверяет его политикой бронирования. При nil выбирает
// первого подходящего из сотрудников, выполняющих услугу, в порядке
// возрастания ID (детерминированный tie-break)
func (uc *UseCase) pickStaff(
	ctx context.Context,
	req *Request,
	business *domain.Business,
	service *domain.Service,
	candidateStart, candidateEnd time.Time,
	now time.Time,
	loc *time.Location,
) (*domain.Staff, error) {
	footprintEnd := candidateEnd.Add(time.Duration(service.BufferTimeMinutes) * time.Minute)

	if req.StaffID != nil {
		staff, err := uc.catalogRepo.GetStaff(ctx, req.BusinessID, *req.StaffID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateAppointment: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}

		offers, err := uc.catalogRepo.StaffOffersService(ctx, req.BusinessID, staff.ID, service.ID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check service membership: %v", err)
			return nil, fmt.Errorf("%w: failed to check service membership: %v", ErrInternal, err)
		}

		free, err := uc.resolver.FreeIntervals(ctx, req.BusinessID, staff.ID, candidateStart, footprintEnd, loc)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve availability for staff=%d: %v", staff.ID, err)
			return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}

		if err := policy.Validate(service, staff, offers, free, candidateStart, now); err != nil {
			uc.logger.Warn("CreateAppointment: policy violation for staff=%d: %v", staff.ID, err)
			return nil, mapPolicyError(err)
		}

		return staff, nil
	}

	// "Любой сотрудник": нотис проверяем один раз, он не зависит от сотрудника
	if err := policy.CheckAdvanceNotice(service, candidateStart, now); err != nil {
		uc.logger.Warn("CreateAppointment: policy violation: %v", err)
		return nil, mapPolicyError(err)
	}

	candidates, err := uc.catalogRepo.GetStaffForService(ctx, req.BusinessID, service.ID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list staff for service=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	if !service.IsActive {
		return nil, fmt.Errorf("%w: service id=%d is not active", ErrEntityUnavailable, service.ID)
	}

	for _, staff := range candidates {
		free, err := uc.resolver.FreeIntervals(ctx, req.BusinessID, staff.ID, candidateStart, footprintEnd, loc)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve availability for staff=%d: %v", staff.ID, err)
			return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}

		if !availability.Covers(free, candidateStart, footprintEnd) {
			continue
		}

		// Рекомендательная проверка конфликта до транзакции, чтобы не
		// выбирать заведомо занятого сотрудника; под блокировкой она
		// выполняется повторно
		conflicts, err := uc.checker.FindConflicts(ctx, req.BusinessID, staff.ID,
			candidateStart, candidateEnd, service.BufferTimeMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: advisory conflict check failed for staff=%d: %v", staff.ID, err)
			return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			continue
		}

		uc.logger.Info("CreateAppointment: picked staff id=%d for service=%d", staff.ID, service.ID)
		return staff, nil
	}

	uc.logger.Warn("CreateAppointment: no staff available for service=%d at %s",
		service.ID, candidateStart.Format(time.RFC3339))
	return nil, ErrNoStaffAvailable
}

// mapPolicyError конвертирует нарушения политики в ошибки usecase
func mapPolicyError(err error) error {
	switch {
	case errors.Is(err, policy.ErrInsufficientNotice):
		return fmt.Errorf("%w: %v", ErrInsufficientNotice, err)
	case errors.Is(err, policy.ErrOutsideAvailability):
		return ErrOutsideAvailability
	case errors.Is(err, policy.ErrEntityUnavailable):
		return fmt.Errorf("%w: %v", ErrEntityUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

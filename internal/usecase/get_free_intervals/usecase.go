package get_free_intervals

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
)

// Максимальный диапазон запроса, дней
const maxRangeDays = 62

// UseCase use case получения свободных интервалов сотрудника
//
// Возвращает чистый результат резолвера (правила доступности минус отгулы),
// существующие записи на него не влияют
type UseCase struct {
	catalogRepo CatalogRepository
	resolver    AvailabilityResolver
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, resolver AvailabilityResolver, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободных интервалов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeIntervals: business=%d, staff=%d, from=%s, to=%s",
		req.BusinessID, req.StaffID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeIntervals: validation failed: %v", err)
		return nil, err
	}

	business, err := uc.catalogRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetFreeIntervals: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetFreeIntervals: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if _, err := uc.catalogRepo.GetStaff(ctx, req.BusinessID, req.StaffID); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetFreeIntervals: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetFreeIntervals: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	intervals, err := uc.resolver.FreeIntervals(ctx, req.BusinessID, req.StaffID, req.From, req.To, business.Location())
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetFreeIntervals: failed to resolve availability for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetFreeIntervals: resolved %d intervals for staff=%d", len(intervals), req.StaffID)

	return fromIntervals(req.BusinessID, req.StaffID, business.Timezone, intervals), nil
}

func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, maxRangeDays)
	}

	return nil
}

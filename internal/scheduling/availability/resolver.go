package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Resolver превращает недельные правила доступности и отгулы сотрудника
// в конкретные свободные интервалы на заданный диапазон дат
type Resolver struct {
	rules   RuleRepository
	timeOff TimeOffRepository
	logger  Logger
}

// NewResolver создает новый резолвер доступности
func NewResolver(rules RuleRepository, timeOff TimeOffRepository, logger Logger) *Resolver {
	return &Resolver{
		rules:   rules,
		timeOff: timeOff,
		logger:  logger,
	}
}

// FreeIntervals возвращает интервалы доступности сотрудника на диапазон
// календарных дат [from, to] (включительно) в таймзоне loc.
//
// Алгоритм по каждой дате:
//  1. Если дата покрыта подтвержденным отгулом - день полностью недоступен
//  2. Иначе берутся правила на день недели с is_available = true
//  3. Каждое правило привязывается к дате, пересекающиеся правила объединяются
//
// День без правил считается выходным (интервалов нет)
func (r *Resolver) FreeIntervals(ctx context.Context, businessID, staffID int64, from, to time.Time, loc *time.Location) ([]Interval, error) {
	fromDate := truncateToDate(from, loc)
	toDate := truncateToDate(to, loc)

	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			fromDate.Format(domain.DateFormat), toDate.Format(domain.DateFormat))
	}

	rules, err := r.rules.GetAvailabilityRules(ctx, businessID, staffID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	// Группируем правила по дню недели
	byWeekday := make(map[int][]*domain.AvailabilityRule)
	for _, rule := range rules {
		if !rule.IsAvailable {
			continue
		}
		byWeekday[rule.DayOfWeek] = append(byWeekday[rule.DayOfWeek], rule)
	}

	timeOff, err := r.timeOff.GetApprovedTimeOff(ctx, businessID, staffID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	result := make([]Interval, 0)

	for date := fromDate; !date.After(toDate); date = date.AddDate(0, 0, 1) {
		if coveredByTimeOff(timeOff, date) {
			continue
		}

		dayRules := byWeekday[int(date.Weekday())]
		if len(dayRules) == 0 {
			continue
		}

		dayIntervals := make([]Interval, 0, len(dayRules))
		for _, rule := range dayRules {
			start, err := rule.StartTime.At(date, loc)
			if err != nil {
				r.logger.Warn("FreeIntervals: rule id=%d has invalid start_time %q, skipping", rule.ID, rule.StartTime)
				continue
			}
			end, err := rule.EndTime.At(date, loc)
			if err != nil {
				r.logger.Warn("FreeIntervals: rule id=%d has invalid end_time %q, skipping", rule.ID, rule.EndTime)
				continue
			}
			if !start.Before(end) {
				r.logger.Warn("FreeIntervals: rule id=%d has start >= end, skipping", rule.ID)
				continue
			}
			dayIntervals = append(dayIntervals, Interval{Start: start, End: end})
		}

		result = append(result, mergeIntervals(dayIntervals)...)
	}

	return result, nil
}

// coveredByTimeOff проверяет, покрыта ли дата одним из отгулов
func coveredByTimeOff(timeOff []*domain.TimeOff, date time.Time) bool {
	for _, t := range timeOff {
		if t.Covers(date) {
			return true
		}
	}
	return false
}

// truncateToDate обнуляет время, оставляя только календарную дату в loc
func truncateToDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

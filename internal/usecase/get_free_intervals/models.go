package get_free_intervals

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/scheduling/availability"
)

// Request модель запроса свободных интервалов сотрудника
type Request struct {
	BusinessID int64     // ID бизнеса (тенант)
	StaffID    int64     // ID сотрудника
	From       time.Time // Начало диапазона (включительно)
	To         time.Time // Конец диапазона (не включительно)
}

// IntervalItem один свободный интервал в ответе
type IntervalItem struct {
	Start time.Time
	End   time.Time
}

// Response модель ответа со свободными интервалами
type Response struct {
	BusinessID int64
	StaffID    int64
	Timezone   string
	Intervals  []IntervalItem
}

// fromIntervals конвертирует интервалы резолвера в response
func fromIntervals(businessID, staffID int64, tz string, intervals []availability.Interval) *Response {
	items := make([]IntervalItem, 0, len(intervals))
	for _, iv := range intervals {
		items = append(items, IntervalItem{Start: iv.Start, End: iv.End})
	}
	return &Response{
		BusinessID: businessID,
		StaffID:    staffID,
		Timezone:   tz,
		Intervals:  items,
	}
}

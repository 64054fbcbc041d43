package get_free_intervals

import (
	"time"

	getFreeIntervals "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_free_intervals"
)

// IntervalResponse один свободный интервал
type IntervalResponse struct {
	Start string `json:"start"` // RFC 3339
	End   string `json:"end"`   // RFC 3339
}

// FreeIntervalsResponse HTTP response model
type FreeIntervalsResponse struct {
	StaffID   int64              `json:"staffId"`
	Timezone  string             `json:"timezone"`
	Intervals []IntervalResponse `json:"intervals"`
}

// ToUseCaseRequest собирает запрос к use case из path и query параметров
func ToUseCaseRequest(businessID, staffID int64, fromStr, toStr string) (*getFreeIntervals.Request, error) {
	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, err
	}

	return &getFreeIntervals.Request{
		BusinessID: businessID,
		StaffID:    staffID,
		From:       from,
		To:         to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeIntervals.Response) *FreeIntervalsResponse {
	intervals := make([]IntervalResponse, 0, len(resp.Intervals))
	for _, iv := range resp.Intervals {
		intervals = append(intervals, IntervalResponse{
			Start: iv.Start.Format(time.RFC3339),
			End:   iv.End.Format(time.RFC3339),
		})
	}

	return &FreeIntervalsResponse{
		StaffID:   resp.StaffID,
		Timezone:  resp.Timezone,
		Intervals: intervals,
	}
}

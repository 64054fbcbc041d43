package availability

import (
	"sort"
	"time"
)

// Interval конкретный временной интервал доступности на календаре сотрудника
// Интервалы полуоткрытые: [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains возвращает true, если [start, end) целиком лежит внутри интервала
func (i Interval) Contains(start, end time.Time) bool {
	return !start.Before(i.Start) && !end.After(i.End)
}

// Covers возвращает true, если [start, end) целиком лежит внутри одного из интервалов
func Covers(intervals []Interval, start, end time.Time) bool {
	for _, iv := range intervals {
		if iv.Contains(start, end) {
			return true
		}
	}
	return false
}

// mergeIntervals объединяет пересекающиеся и смежные интервалы одного дня
// Пересечение правил на один день - не ошибка, а сплит-смена с перекрытием:
// без объединения проверка конфликтов увидела бы ложное двойное покрытие
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) <= 1 {
		return intervals
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	merged := make([]Interval, 0, len(intervals))
	current := intervals[0]

	for _, iv := range intervals[1:] {
		if !iv.Start.After(current.End) {
			// Пересекаются или граничат - расширяем текущий
			if iv.End.After(current.End) {
				current.End = iv.End
			}
			continue
		}
		merged = append(merged, current)
		current = iv
	}

	return append(merged, current)
}

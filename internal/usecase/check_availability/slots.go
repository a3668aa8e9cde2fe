package check_availability

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// buildSlots превращает начала интервалов рабочих часов в слоты на дату.
// Слоты, которые уже начались, отбрасываются.
func buildSlots(
	starts []types.TimeString,
	date time.Time,
	loc *time.Location,
	duration int,
	now time.Time,
	bookings []*domain.Booking,
) []Slot {
	result := make([]Slot, 0, len(starts))

	for _, start := range starts {
		at := start.On(date, loc)
		if at.Before(now) {
			continue
		}

		window := domain.TimeWindow{Start: at, DurationMinutes: duration}
		result = append(result, Slot{
			StartTime:       start,
			ScheduledTime:   at,
			DurationMinutes: duration,
			Free:            countOverlappingBookings(window, bookings) == 0,
		})
	}

	return result
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающиеся с окном.
// Бронирования, которые граничат с окном (заканчиваются ровно в начале), пересечением не считаются.
func countOverlappingBookings(window domain.TimeWindow, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.Window().Overlaps(window) {
			count++
		}
	}
	return count
}

// dayBounds возвращает начало и конец суток даты в часовом поясе школы
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}

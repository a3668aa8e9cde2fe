package handlers

import (
	"strings"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

// ParseTimestamp разбирает момент времени в RFC3339.
// Ошибка разбора возвращается как *scheduling.ValidationError по полю field.
func ParseTimestamp(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, scheduling.NewFieldError(field, scheduling.CodeInvalidTimeFormat,
			"expected RFC3339 timestamp, got "+raw)
	}
	return t, nil
}

// ParseDate разбирает дату YYYY-MM-DD в часовом поясе loc
func ParseDate(field, raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, scheduling.NewFieldError(field, scheduling.CodeInvalidTimeFormat,
			"expected YYYY-MM-DD date, got "+raw)
	}
	return t, nil
}

// ParseStatus разбирает статус урока или занятия
func ParseStatus(raw string) (domain.BookingStatus, error) {
	status, err := domain.ParseBookingStatus(raw)
	if err != nil {
		return "", scheduling.NewFieldError(scheduling.FieldStatus, scheduling.CodeInvalidStatus, err.Error())
	}
	return status, nil
}

// FormatTime форматирует момент времени для ответа
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatTimePtr форматирует необязательный момент времени
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

package check_availability

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// CheckRequest модель запроса на пробную проверку бронирования.
// Если указан BookingID, проверяется изменение существующего урока или занятия.
type CheckRequest struct {
	BookingID *int64
	Intent    scheduling.BookingIntent
}

// CheckResponse результат пробной проверки. Ничего не сохраняется.
type CheckResponse struct {
	Valid  bool
	Errors scheduling.FieldErrors
	Detail string
}

// FreeSlotsRequest модель запроса свободных слотов инструктора на дату
type FreeSlotsRequest struct {
	InstructorID    int64
	Date            time.Time // Дата в часовом поясе школы (без времени)
	DurationMinutes int       // Длительность занятия, по умолчанию длительность урока
	At              string    // Необязательное время "HH:MM" для проверки по рабочим часам
}

// FreeSlotsResponse модель ответа со слотами рабочего дня инструктора
type FreeSlotsResponse struct {
	InstructorID int64
	Date         time.Time
	Day          domain.Weekday
	Slots        []Slot
	Requested    *RequestedTime // Заполняется, только если указано время At
}

// RequestedTime результат проверки запрошенного времени
type RequestedTime struct {
	StartTime types.TimeString
	Working   bool            // Время попадает в рабочие часы
	Reason    scheduling.Code // Код нарушения, если время нерабочее
	Free      bool            // Инструктор свободен на всю длительность
}

// Slot модель слота из рабочих часов инструктора
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	ScheduledTime   time.Time        // Момент начала слота
	DurationMinutes int              // Длительность проверяемого занятия
	Free            bool             // Инструктор свободен на всю длительность
}

package schedule_class

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

// Request модель запроса на создание или изменение группового занятия.
// При изменении nil-поля сохраняют текущее значение занятия.
type Request struct {
	Name            *string               // Название, по умолчанию "<курс> - YYYY-MM-DD HH:MM"
	CourseID        *int64                // Теоретический курс
	InstructorID    *int64                // ID инструктора
	ResourceID      *int64                // ID аудитории
	ScheduledTime   *time.Time            // Время начала
	DurationMinutes *int                  // Длительность, по умолчанию 60 минут
	MaxStudents     *int                  // Максимум студентов
	StudentIDs      *[]int64              // Состав группы (заменяет текущий)
	Status          *domain.BookingStatus // Статус занятия
}

func (r *Request) toIntent() scheduling.BookingIntent {
	return scheduling.BookingIntent{
		Kind:            domain.KindClass,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		CourseID:        r.CourseID,
		ScheduledTime:   r.ScheduledTime,
		DurationMinutes: r.DurationMinutes,
		MaxStudents:     r.MaxStudents,
		StudentIDs:      r.StudentIDs,
		Status:          r.Status,
		Name:            r.Name,
	}
}

// Response модель ответа с сохраненным занятием
type Response struct {
	ID              int64
	PatternID       *int64
	Name            string
	CourseID        int64
	InstructorID    int64
	ResourceID      int64
	ScheduledTime   time.Time
	DurationMinutes int
	MaxStudents     int
	StudentIDs      []int64
	AvailableSpots  int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func fromDomain(class *domain.Booking) *Response {
	resp := &Response{
		ID:              class.ID,
		PatternID:       class.PatternID,
		Name:            class.Name,
		CourseID:        class.CourseID,
		InstructorID:    class.InstructorID,
		ScheduledTime:   class.ScheduledTime,
		DurationMinutes: class.DurationMinutes,
		MaxStudents:     class.MaxStudents,
		StudentIDs:      class.StudentIDs,
		AvailableSpots:  class.AvailableSpots(),
		Status:          string(class.Status),
		CreatedAt:       class.CreatedAt,
		UpdatedAt:       class.UpdatedAt,
	}
	if class.ResourceID != nil {
		resp.ResourceID = *class.ResourceID
	}
	if resp.StudentIDs == nil {
		resp.StudentIDs = []int64{}
	}
	return resp
}

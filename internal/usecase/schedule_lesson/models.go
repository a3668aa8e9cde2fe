package schedule_lesson

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

// Request модель запроса на создание или изменение урока.
// При изменении nil-поля сохраняют текущее значение урока.
type Request struct {
	EnrollmentID    *int64                // Запись студента на практический курс
	InstructorID    *int64                // ID инструктора
	ResourceID      *int64                // ID автомобиля (опционально)
	ClearResource   bool                  // Снять автомобиль с урока
	ScheduledTime   *time.Time            // Время начала
	DurationMinutes *int                  // Длительность, по умолчанию 90 минут
	Status          *domain.BookingStatus // Статус урока
	Notes           *string               // Заметки
}

func (r *Request) toIntent() scheduling.BookingIntent {
	return scheduling.BookingIntent{
		Kind:            domain.KindLesson,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		ClearResource:   r.ClearResource,
		EnrollmentID:    r.EnrollmentID,
		ScheduledTime:   r.ScheduledTime,
		DurationMinutes: r.DurationMinutes,
		Status:          r.Status,
		Notes:           r.Notes,
	}
}

// Response модель ответа с сохраненным уроком
type Response struct {
	ID              int64
	EnrollmentID    int64
	StudentID       int64
	CourseID        int64
	InstructorID    int64
	ResourceID      *int64
	ScheduledTime   time.Time
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func fromDomain(lesson *domain.Booking) *Response {
	resp := &Response{
		ID:              lesson.ID,
		CourseID:        lesson.CourseID,
		InstructorID:    lesson.InstructorID,
		ResourceID:      lesson.ResourceID,
		ScheduledTime:   lesson.ScheduledTime,
		DurationMinutes: lesson.DurationMinutes,
		Status:          string(lesson.Status),
		Notes:           lesson.Notes,
		CreatedAt:       lesson.CreatedAt,
		UpdatedAt:       lesson.UpdatedAt,
	}
	if lesson.EnrollmentID != nil {
		resp.EnrollmentID = *lesson.EnrollmentID
	}
	if lesson.StudentID != nil {
		resp.StudentID = *lesson.StudentID
	}
	return resp
}

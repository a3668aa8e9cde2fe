package schedule_lesson

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	scheduleLesson "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_lesson"
)

// LessonRequest HTTP модель запроса урока.
// Для PUT отсутствующие поля сохраняют текущее значение.
type LessonRequest struct {
	EnrollmentID    *int64  `json:"enrollment_id,omitempty"`
	InstructorID    *int64  `json:"instructor_id,omitempty"`
	ResourceID      *int64  `json:"resource_id,omitempty"`
	ClearResource   bool    `json:"clear_resource,omitempty"`
	ScheduledTime   *string `json:"scheduled_time,omitempty"` // RFC3339
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// LessonResponse HTTP модель ответа
type LessonResponse struct {
	ID              int64   `json:"id"`
	EnrollmentID    int64   `json:"enrollment_id"`
	StudentID       int64   `json:"student_id"`
	CourseID        int64   `json:"course_id"`
	InstructorID    int64   `json:"instructor_id"`
	ResourceID      *int64  `json:"resource_id"`
	ScheduledTime   string  `json:"scheduled_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Ошибки разбора времени и статуса собираются в одну ошибку валидации.
func (r *LessonRequest) ToUseCaseRequest() (*scheduleLesson.Request, error) {
	req := &scheduleLesson.Request{
		EnrollmentID:    r.EnrollmentID,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		ClearResource:   r.ClearResource,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}

	fields := scheduling.FieldErrors{}
	if r.ScheduledTime != nil {
		t, err := handlers.ParseTimestamp(scheduling.FieldScheduledTime, *r.ScheduledTime)
		if err != nil {
			fields.Add(scheduling.FieldScheduledTime, scheduling.CodeInvalidTimeFormat)
		} else {
			req.ScheduledTime = &t
		}
	}
	if r.Status != nil {
		status, err := handlers.ParseStatus(*r.Status)
		if err != nil {
			fields.Add(scheduling.FieldStatus, scheduling.CodeInvalidStatus)
		} else {
			req.Status = &status
		}
	}
	if err := fields.Err("malformed lesson request"); err != nil {
		return nil, err
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scheduleLesson.Response) *LessonResponse {
	return &LessonResponse{
		ID:              resp.ID,
		EnrollmentID:    resp.EnrollmentID,
		StudentID:       resp.StudentID,
		CourseID:        resp.CourseID,
		InstructorID:    resp.InstructorID,
		ResourceID:      resp.ResourceID,
		ScheduledTime:   handlers.FormatTime(resp.ScheduledTime),
		EndTime:         handlers.FormatTime(resp.ScheduledTime.Add(time.Duration(resp.DurationMinutes)*time.Minute)),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       handlers.FormatTime(resp.CreatedAt),
		UpdatedAt:       handlers.FormatTime(resp.UpdatedAt),
	}
}

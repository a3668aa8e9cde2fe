package schedule_class

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	scheduleClass "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_class"
)

// ClassRequest HTTP модель запроса группового занятия.
// student_ids заменяет состав группы целиком.
type ClassRequest struct {
	Name            *string  `json:"name,omitempty"`
	CourseID        *int64   `json:"course_id,omitempty"`
	InstructorID    *int64   `json:"instructor_id,omitempty"`
	ResourceID      *int64   `json:"resource_id,omitempty"`
	ScheduledTime   *string  `json:"scheduled_time,omitempty"` // RFC3339
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	MaxStudents     *int     `json:"max_students,omitempty"`
	StudentIDs      *[]int64 `json:"student_ids,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

// ClassResponse HTTP модель ответа
type ClassResponse struct {
	ID              int64   `json:"id"`
	PatternID       *int64  `json:"pattern_id,omitempty"`
	Name            string  `json:"name"`
	CourseID        int64   `json:"course_id"`
	InstructorID    int64   `json:"instructor_id"`
	ResourceID      int64   `json:"resource_id"`
	ScheduledTime   string  `json:"scheduled_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	MaxStudents     int     `json:"max_students"`
	StudentIDs      []int64 `json:"student_ids"`
	AvailableSpots  int     `json:"available_spots"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ClassRequest) ToUseCaseRequest() (*scheduleClass.Request, error) {
	req := &scheduleClass.Request{
		Name:            r.Name,
		CourseID:        r.CourseID,
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		DurationMinutes: r.DurationMinutes,
		MaxStudents:     r.MaxStudents,
		StudentIDs:      r.StudentIDs,
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
	if err := fields.Err("malformed class request"); err != nil {
		return nil, err
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scheduleClass.Response) *ClassResponse {
	return &ClassResponse{
		ID:              resp.ID,
		PatternID:       resp.PatternID,
		Name:            resp.Name,
		CourseID:        resp.CourseID,
		InstructorID:    resp.InstructorID,
		ResourceID:      resp.ResourceID,
		ScheduledTime:   handlers.FormatTime(resp.ScheduledTime),
		EndTime:         handlers.FormatTime(resp.ScheduledTime.Add(time.Duration(resp.DurationMinutes) * time.Minute)),
		DurationMinutes: resp.DurationMinutes,
		MaxStudents:     resp.MaxStudents,
		StudentIDs:      resp.StudentIDs,
		AvailableSpots:  resp.AvailableSpots,
		Status:          resp.Status,
		CreatedAt:       handlers.FormatTime(resp.CreatedAt),
		UpdatedAt:       handlers.FormatTime(resp.UpdatedAt),
	}
}

package check_availability

import (
	"strings"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	checkAvailability "github.com/m04kA/DS-SchedulingService/internal/usecase/check_availability"
)

// CheckRequest HTTP модель пробной проверки урока или занятия
type CheckRequest struct {
	Kind            string   `json:"kind"` // "lesson" или "class"
	BookingID       *int64   `json:"booking_id,omitempty"`
	InstructorID    *int64   `json:"instructor_id,omitempty"`
	ResourceID      *int64   `json:"resource_id,omitempty"`
	ClearResource   bool     `json:"clear_resource,omitempty"`
	CourseID        *int64   `json:"course_id,omitempty"`
	EnrollmentID    *int64   `json:"enrollment_id,omitempty"`
	ScheduledTime   *string  `json:"scheduled_time,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	MaxStudents     *int     `json:"max_students,omitempty"`
	StudentIDs      *[]int64 `json:"student_ids,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

// CheckResponse HTTP модель результата проверки
type CheckResponse struct {
	Valid  bool                   `json:"valid"`
	Errors scheduling.FieldErrors `json:"errors"`
	Detail string                 `json:"detail,omitempty"`
}

// FreeSlotsResponse HTTP модель свободных слотов инструктора
type FreeSlotsResponse struct {
	InstructorID int64          `json:"instructor_id"`
	Date         string         `json:"date"`
	Day          string         `json:"day"`
	Slots        []SlotInfo     `json:"slots"`
	Requested    *RequestedInfo `json:"requested,omitempty"`
}

// RequestedInfo проверка запрошенного времени по рабочим часам
type RequestedInfo struct {
	StartTime string `json:"start_time"`
	Working   bool   `json:"working"`
	Reason    string `json:"reason,omitempty"`
	Free      bool   `json:"free"`
}

// SlotInfo слот рабочего дня
type SlotInfo struct {
	StartTime       string `json:"start_time"`
	ScheduledTime   string `json:"scheduled_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Free            bool   `json:"free"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckRequest) ToUseCaseRequest() (*checkAvailability.CheckRequest, error) {
	intent := scheduling.BookingIntent{
		Kind:            domain.BookingKind(strings.ToLower(strings.TrimSpace(r.Kind))),
		InstructorID:    r.InstructorID,
		ResourceID:      r.ResourceID,
		ClearResource:   r.ClearResource,
		CourseID:        r.CourseID,
		EnrollmentID:    r.EnrollmentID,
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
			intent.ScheduledTime = &t
		}
	}
	if r.Status != nil {
		status, err := handlers.ParseStatus(*r.Status)
		if err != nil {
			fields.Add(scheduling.FieldStatus, scheduling.CodeInvalidStatus)
		} else {
			intent.Status = &status
		}
	}
	if err := fields.Err("malformed check request"); err != nil {
		return nil, err
	}

	return &checkAvailability.CheckRequest{
		BookingID: r.BookingID,
		Intent:    intent,
	}, nil
}

func fromCheckResponse(resp *checkAvailability.CheckResponse) *CheckResponse {
	errs := resp.Errors
	if errs == nil {
		errs = scheduling.FieldErrors{}
	}
	return &CheckResponse{
		Valid:  resp.Valid,
		Errors: errs,
		Detail: resp.Detail,
	}
}

func fromFreeSlotsResponse(resp *checkAvailability.FreeSlotsResponse) *FreeSlotsResponse {
	slots := make([]SlotInfo, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotInfo{
			StartTime:       s.StartTime.String(),
			ScheduledTime:   handlers.FormatTime(s.ScheduledTime),
			DurationMinutes: s.DurationMinutes,
			Free:            s.Free,
		})
	}
	result := &FreeSlotsResponse{
		InstructorID: resp.InstructorID,
		Date:         resp.Date.Format(domain.DateFormat),
		Day:          string(resp.Day),
		Slots:        slots,
	}
	if r := resp.Requested; r != nil {
		result.Requested = &RequestedInfo{
			StartTime: r.StartTime.String(),
			Working:   r.Working,
			Reason:    string(r.Reason),
			Free:      r.Free,
		}
	}
	return result
}

package bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/service/bookings"
)

// BookingResponse HTTP модель урока или группового занятия
type BookingResponse struct {
	Kind            string  `json:"kind"`
	ID              int64   `json:"id"`
	Name            string  `json:"name,omitempty"`
	CourseID        int64   `json:"course_id"`
	InstructorID    int64   `json:"instructor_id"`
	ResourceID      *int64  `json:"resource_id"`
	EnrollmentID    *int64  `json:"enrollment_id,omitempty"`
	StudentID       *int64  `json:"student_id,omitempty"`
	StudentIDs      []int64 `json:"student_ids,omitempty"`
	MaxStudents     int     `json:"max_students,omitempty"`
	AvailableSpots  *int    `json:"available_spots,omitempty"`
	PatternID       *int64  `json:"pattern_id,omitempty"`
	ScheduledTime   string  `json:"scheduled_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
}

// ScheduleResponse HTTP модель расписания за период
type ScheduleResponse struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	Items []*BookingResponse `json:"items"`
}

func fromServiceBooking(b *bookings.BookingResponse) *BookingResponse {
	resp := &BookingResponse{
		Kind:            b.Kind,
		ID:              b.ID,
		Name:            b.Name,
		CourseID:        b.CourseID,
		InstructorID:    b.InstructorID,
		ResourceID:      b.ResourceID,
		EnrollmentID:    b.EnrollmentID,
		StudentID:       b.StudentID,
		StudentIDs:      b.StudentIDs,
		MaxStudents:     b.MaxStudents,
		PatternID:       b.PatternID,
		ScheduledTime:   handlers.FormatTime(b.ScheduledTime),
		EndTime:         handlers.FormatTime(b.EndTime),
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		Notes:           b.Notes,
	}
	if b.Kind == string(domain.KindClass) {
		spots := b.AvailableSpots
		resp.AvailableSpots = &spots
	}
	return resp
}

func fromServiceSchedule(s *bookings.ScheduleResponse) *ScheduleResponse {
	items := make([]*BookingResponse, 0, len(s.Items))
	for _, b := range s.Items {
		items = append(items, fromServiceBooking(b))
	}
	return &ScheduleResponse{
		From:  handlers.FormatTime(s.From),
		To:    handlers.FormatTime(s.To),
		Items: items,
	}
}

// ToScheduleRequest разбирает query параметры from, to (RFC3339 или YYYY-MM-DD) и include_canceled
func ToScheduleRequest(query url.Values, loc *time.Location) (*bookings.ScheduleRequest, error) {
	req := &bookings.ScheduleRequest{}

	var err error
	if req.From, err = parseBound(query.Get("from"), loc); err != nil {
		return nil, err
	}
	if req.To, err = parseBound(query.Get("to"), loc); err != nil {
		return nil, err
	}
	if raw := query.Get("include_canceled"); raw != "" {
		if req.IncludeCanceled, err = strconv.ParseBool(raw); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func parseBound(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

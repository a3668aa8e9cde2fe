package bookings

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// MaxScheduleDays максимальная длина запрашиваемого периода расписания
const MaxScheduleDays = 31

// DefaultScheduleDays период расписания по умолчанию
const DefaultScheduleDays = 7

// ScheduleRequest запрос расписания студента или инструктора
type ScheduleRequest struct {
	From            *time.Time
	To              *time.Time
	IncludeCanceled bool
}

// BookingResponse урок или групповое занятие
type BookingResponse struct {
	Kind            string
	ID              int64
	Name            string
	CourseID        int64
	InstructorID    int64
	ResourceID      *int64
	EnrollmentID    *int64
	StudentID       *int64
	StudentIDs      []int64
	MaxStudents     int
	AvailableSpots  int
	PatternID       *int64
	ScheduledTime   time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	Notes           *string
}

// ScheduleResponse расписание за период
type ScheduleResponse struct {
	From  time.Time
	To    time.Time
	Items []*BookingResponse
}

func fromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		Kind:            string(b.Kind),
		ID:              b.ID,
		Name:            b.Name,
		CourseID:        b.CourseID,
		InstructorID:    b.InstructorID,
		ResourceID:      b.ResourceID,
		EnrollmentID:    b.EnrollmentID,
		StudentID:       b.StudentID,
		PatternID:       b.PatternID,
		ScheduledTime:   b.ScheduledTime,
		EndTime:         b.Window().End(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Notes:           b.Notes,
	}
	if b.Kind == domain.KindClass {
		resp.StudentIDs = b.StudentIDs
		if resp.StudentIDs == nil {
			resp.StudentIDs = []int64{}
		}
		resp.MaxStudents = b.MaxStudents
		resp.AvailableSpots = b.AvailableSpots()
	}
	return resp
}

func fromDomainBookingList(from, to time.Time, bookings []*domain.Booking) *ScheduleResponse {
	items := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, fromDomainBooking(b))
	}
	return &ScheduleResponse{From: from, To: to, Items: items}
}

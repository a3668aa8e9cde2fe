package bookings

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/bookings"
)

type BookingService interface {
	GetLesson(ctx context.Context, id int64) (*bookings.BookingResponse, error)
	GetClass(ctx context.Context, id int64) (*bookings.BookingResponse, error)
	CancelLesson(ctx context.Context, id int64) (*bookings.BookingResponse, error)
	StudentSchedule(ctx context.Context, studentID int64, req *bookings.ScheduleRequest) (*bookings.ScheduleResponse, error)
	InstructorSchedule(ctx context.Context, instructorID int64, req *bookings.ScheduleRequest) (*bookings.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

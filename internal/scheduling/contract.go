package scheduling

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// BookingAccessor read access to persisted lessons and classes.
// It is the only data dependency of conflict detection.
type BookingAccessor interface {
	FindActiveBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// Catalog read access to the reference data a booking points at.
// Lookups of missing records return an error wrapping domain.ErrNotFound.
type Catalog interface {
	GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error)
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	GetEnrollment(ctx context.Context, id int64) (*domain.Enrollment, error)
	ListAvailability(ctx context.Context, instructorID int64) ([]domain.AvailabilityEntry, error)
	// EnrolledStudentIDs returns the subset of studentIDs holding an enrollment in the course
	EnrolledStudentIDs(ctx context.Context, courseID int64, studentIDs []int64) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

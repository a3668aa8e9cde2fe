package scheduling

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

type nopLogger struct {
	warnings []string
}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}
func (l *nopLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

// memoryBookings in-memory accessor with the same filter semantics as the repository
type memoryBookings struct {
	bookings []*domain.Booking
	calls    int
	err      error
}

func (m *memoryBookings) add(b *domain.Booking) {
	m.bookings = append(m.bookings, b)
}

func (m *memoryBookings) FindActiveBookings(_ context.Context, f domain.BookingFilter) ([]*domain.Booking, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	var out []*domain.Booking
	for _, b := range m.bookings {
		if !f.IncludesKind(b.Kind) {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, b.Status) {
			continue
		}
		if f.InstructorID != nil && b.InstructorID != *f.InstructorID {
			continue
		}
		if f.ResourceID != nil && (b.ResourceID == nil || *b.ResourceID != *f.ResourceID) {
			continue
		}
		if f.StudentID != nil && !b.HasStudent(*f.StudentID) {
			continue
		}
		if b.ScheduledTime.Before(f.From) || !b.ScheduledTime.Before(f.To) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type memoryCatalog struct {
	instructors  map[int64]*domain.Instructor
	resources    map[int64]*domain.Resource
	courses      map[int64]*domain.Course
	enrollments  map[int64]*domain.Enrollment
	availability []domain.AvailabilityEntry
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		instructors: map[int64]*domain.Instructor{},
		resources:   map[int64]*domain.Resource{},
		courses:     map[int64]*domain.Course{},
		enrollments: map[int64]*domain.Enrollment{},
	}
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
}

func (c *memoryCatalog) GetInstructor(_ context.Context, id int64) (*domain.Instructor, error) {
	if i, ok := c.instructors[id]; ok {
		return i, nil
	}
	return nil, notFound("instructor", id)
}

func (c *memoryCatalog) GetResource(_ context.Context, id int64) (*domain.Resource, error) {
	if r, ok := c.resources[id]; ok {
		return r, nil
	}
	return nil, notFound("resource", id)
}

func (c *memoryCatalog) GetCourse(_ context.Context, id int64) (*domain.Course, error) {
	if co, ok := c.courses[id]; ok {
		return co, nil
	}
	return nil, notFound("course", id)
}

func (c *memoryCatalog) GetEnrollment(_ context.Context, id int64) (*domain.Enrollment, error) {
	if e, ok := c.enrollments[id]; ok {
		return e, nil
	}
	return nil, notFound("enrollment", id)
}

func (c *memoryCatalog) ListAvailability(_ context.Context, instructorID int64) ([]domain.AvailabilityEntry, error) {
	var out []domain.AvailabilityEntry
	for _, e := range c.availability {
		if e.InstructorID == instructorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *memoryCatalog) EnrolledStudentIDs(_ context.Context, courseID int64, studentIDs []int64) ([]int64, error) {
	var out []int64
	for _, id := range studentIDs {
		for _, e := range c.enrollments {
			if e.StudentID == id && e.CourseID == courseID && e.Status != domain.EnrollmentCanceled {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

// 2025-03-03 is a Monday
func monday(hour, minute int) time.Time {
	return time.Date(2025, 3, 3, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

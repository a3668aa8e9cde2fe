package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrInvalidStatus = errors.New("domain: invalid booking status")

// BookingKind distinguishes single lessons from group classes
type BookingKind string

const (
	KindLesson BookingKind = "lesson"
	KindClass  BookingKind = "class"
)

// AllBookingKinds both kinds share conflict semantics
var AllBookingKinds = []BookingKind{KindLesson, KindClass}

// BookingStatus represents the lifecycle status of a lesson or class
type BookingStatus string

const (
	StatusScheduled BookingStatus = "SCHEDULED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCanceled  BookingStatus = "CANCELED"
)

// ParseBookingStatus validates a status at the boundary
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusScheduled, StatusCompleted, StatusCanceled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// BookingRef identifies a booking across both storage tables
type BookingRef struct {
	Kind BookingKind
	ID   int64
}

// Booking represents a lesson or a scheduled class occupying an instructor,
// optionally a resource, and one or more students
type Booking struct {
	ID           int64
	Kind         BookingKind
	InstructorID int64
	ResourceID   *int64
	CourseID     int64
	Status       BookingStatus

	ScheduledTime   time.Time
	DurationMinutes int

	// Lesson only
	EnrollmentID *int64
	StudentID    *int64
	Notes        *string

	// Class only
	Name        string
	MaxStudents int
	StudentIDs  []int64
	PatternID   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref returns the cross-table identity of the booking
func (b *Booking) Ref() BookingRef {
	return BookingRef{Kind: b.Kind, ID: b.ID}
}

// Window returns the occupied time window
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.ScheduledTime, DurationMinutes: b.DurationMinutes}
}

// IsActive returns true if the booking still occupies its participants
func (b *Booking) IsActive() bool {
	return slices.Contains(ActiveStatuses, b.Status)
}

// CanBeCanceled returns true if the booking has not happened or been canceled yet
func (b *Booking) CanBeCanceled() bool {
	return b.Status == StatusScheduled
}

// HasStudent reports whether the student takes part in the booking
func (b *Booking) HasStudent(studentID int64) bool {
	if b.StudentID != nil && *b.StudentID == studentID {
		return true
	}
	return slices.Contains(b.StudentIDs, studentID)
}

// AvailableSpots returns free seats of a class
func (b *Booking) AvailableSpots() int {
	return max(0, b.MaxStudents-len(b.StudentIDs))
}

// IsFull returns true if the class roster reached max students
func (b *Booking) IsFull() bool {
	return len(b.StudentIDs) >= b.MaxStudents
}

// BookingFilter selects bookings for conflict scans.
// Nil participant fields are not filtered. Empty Kinds means both kinds.
// The time range matches bookings with From <= scheduled_time < To.
type BookingFilter struct {
	InstructorID *int64
	ResourceID   *int64
	StudentID    *int64
	Statuses     []BookingStatus
	Kinds        []BookingKind
	From         time.Time
	To           time.Time
}

// IncludesKind reports whether the filter selects the given kind
func (f BookingFilter) IncludesKind(kind BookingKind) bool {
	return len(f.Kinds) == 0 || slices.Contains(f.Kinds, kind)
}

// ClassName builds "<base> - <when>" trimming base so the result fits MaxNameLength runes
func ClassName(base, when string) string {
	suffix := " - " + when
	limit := MaxNameLength - len([]rune(suffix))
	runes := []rune(strings.TrimSpace(base))
	if limit < 0 {
		limit = 0
	}
	if len(runes) > limit {
		runes = []rune(strings.TrimSpace(string(runes[:limit])))
	}
	return string(runes) + suffix
}

package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// Exclusion lists bookings that must not conflict with the proposed window:
// the record being edited and, on regeneration, every class of the pattern.
type Exclusion struct {
	Ref       *domain.BookingRef
	PatternID *int64
}

func (e Exclusion) excludes(b *domain.Booking) bool {
	if e.Ref != nil && b.Kind == e.Ref.Kind && b.ID == e.Ref.ID {
		return true
	}
	if e.PatternID != nil && b.PatternID != nil && *b.PatternID == *e.PatternID {
		return true
	}
	return false
}

// ConflictDetector scans both booking kinds for temporal overlap on a participant
type ConflictDetector struct {
	accessor BookingAccessor
	lookback time.Duration
}

// NewConflictDetector creates a detector. A lookback shorter than the longest
// possible session would miss bookings running into the window, so it is raised
// to domain.DefaultConflictLookback.
func NewConflictDetector(accessor BookingAccessor, lookback time.Duration) *ConflictDetector {
	return &ConflictDetector{
		accessor: accessor,
		lookback: max(lookback, domain.DefaultConflictLookback),
	}
}

// CheckInstructor fails with instructorConflict on the first overlapping booking of the instructor
func (d *ConflictDetector) CheckInstructor(ctx context.Context, instructorID int64, window domain.TimeWindow, excl Exclusion) error {
	conflict, err := d.findOverlap(ctx, domain.BookingFilter{InstructorID: &instructorID}, window, excl)
	if err != nil {
		return err
	}
	if conflict != nil {
		return violation(FieldInstructorID, CodeInstructorConflict,
			"instructor %d is busy with %s %d at %s", instructorID, conflict.Kind, conflict.ID, conflict.Window())
	}
	return nil
}

// CheckResource fails with resourceConflict on the first overlapping booking of the resource
func (d *ConflictDetector) CheckResource(ctx context.Context, resourceID int64, window domain.TimeWindow, excl Exclusion) error {
	conflict, err := d.findOverlap(ctx, domain.BookingFilter{ResourceID: &resourceID}, window, excl)
	if err != nil {
		return err
	}
	if conflict != nil {
		return violation(FieldResourceID, CodeResourceConflict,
			"resource %d is taken by %s %d at %s", resourceID, conflict.Kind, conflict.ID, conflict.Window())
	}
	return nil
}

// CheckStudents fails with studentConflict, tagged to field, when any student
// has an overlapping lesson or sits on an overlapping class roster
func (d *ConflictDetector) CheckStudents(ctx context.Context, field string, studentIDs []int64, window domain.TimeWindow, excl Exclusion) error {
	for _, studentID := range studentIDs {
		conflict, err := d.findOverlap(ctx, domain.BookingFilter{StudentID: &studentID}, window, excl)
		if err != nil {
			return err
		}
		if conflict != nil {
			return violation(field, CodeStudentConflict,
				"student %d is busy with %s %d at %s", studentID, conflict.Kind, conflict.ID, conflict.Window())
		}
	}
	return nil
}

func (d *ConflictDetector) findOverlap(ctx context.Context, filter domain.BookingFilter, window domain.TimeWindow, excl Exclusion) (*domain.Booking, error) {
	filter.Statuses = domain.ActiveStatuses
	filter.Kinds = domain.AllBookingKinds
	filter.From = window.Start.Add(-d.lookback)
	filter.To = window.End()

	bookings, err := d.accessor.FindActiveBookings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: findOverlap: %v", ErrAccessor, err)
	}

	for _, b := range bookings {
		if excl.excludes(b) || !b.IsActive() {
			continue
		}
		if b.Window().Overlaps(window) {
			return b, nil
		}
	}
	return nil, nil
}

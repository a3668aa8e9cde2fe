package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lesson(id, instructorID int64, start time.Time, duration int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Kind:            domain.KindLesson,
		InstructorID:    instructorID,
		ScheduledTime:   start,
		DurationMinutes: duration,
		Status:          domain.StatusScheduled,
	}
}

func TestConflictDetector_CheckInstructor(t *testing.T) {
	store := &memoryBookings{}
	store.add(lesson(1, 7, monday(10, 0), 60))
	detector := NewConflictDetector(store, 0)
	ctx := context.Background()

	t.Run("пересечение", func(t *testing.T) {
		err := detector.CheckInstructor(ctx, 7, domain.TimeWindow{Start: monday(10, 30), DurationMinutes: 60}, Exclusion{})
		requireCode(t, err, FieldInstructorID, CodeInstructorConflict)
	})

	t.Run("касание не является конфликтом", func(t *testing.T) {
		err := detector.CheckInstructor(ctx, 7, domain.TimeWindow{Start: monday(11, 0), DurationMinutes: 60}, Exclusion{})
		assert.NoError(t, err)

		err = detector.CheckInstructor(ctx, 7, domain.TimeWindow{Start: monday(9, 0), DurationMinutes: 60}, Exclusion{})
		assert.NoError(t, err)
	})

	t.Run("другой инструктор", func(t *testing.T) {
		err := detector.CheckInstructor(ctx, 8, domain.TimeWindow{Start: monday(10, 0), DurationMinutes: 60}, Exclusion{})
		assert.NoError(t, err)
	})

	t.Run("редактируемое бронирование исключено", func(t *testing.T) {
		ref := domain.BookingRef{Kind: domain.KindLesson, ID: 1}
		err := detector.CheckInstructor(ctx, 7, domain.TimeWindow{Start: monday(10, 15), DurationMinutes: 60}, Exclusion{Ref: &ref})
		assert.NoError(t, err)
	})

	t.Run("ссылка на класс с тем же id не исключает урок", func(t *testing.T) {
		ref := domain.BookingRef{Kind: domain.KindClass, ID: 1}
		err := detector.CheckInstructor(ctx, 7, domain.TimeWindow{Start: monday(10, 15), DurationMinutes: 60}, Exclusion{Ref: &ref})
		requireCode(t, err, FieldInstructorID, CodeInstructorConflict)
	})
}

func TestConflictDetector_LongBookingInsideLookback(t *testing.T) {
	store := &memoryBookings{}
	// Занятие на 8 часов, начавшееся задолго до нового окна
	store.add(lesson(1, 7, monday(6, 0), 480))
	detector := NewConflictDetector(store, time.Hour)

	err := detector.CheckInstructor(context.Background(), 7,
		domain.TimeWindow{Start: monday(13, 0), DurationMinutes: 30}, Exclusion{})

	requireCode(t, err, FieldInstructorID, CodeInstructorConflict)
}

func TestConflictDetector_IgnoresCanceled(t *testing.T) {
	store := &memoryBookings{}
	canceled := lesson(1, 7, monday(10, 0), 60)
	canceled.Status = domain.StatusCanceled
	store.add(canceled)

	completed := lesson(2, 7, monday(12, 0), 60)
	completed.Status = domain.StatusCompleted
	store.add(completed)

	detector := NewConflictDetector(store, 0)
	ctx := context.Background()

	assert.NoError(t, detector.CheckInstructor(ctx, 7, domain.TimeWindow{Start: monday(10, 0), DurationMinutes: 60}, Exclusion{}))
	requireCode(t,
		detector.CheckInstructor(ctx, 7, domain.TimeWindow{Start: monday(12, 30), DurationMinutes: 60}, Exclusion{}),
		FieldInstructorID, CodeInstructorConflict)
}

func TestConflictDetector_CheckStudents(t *testing.T) {
	store := &memoryBookings{}
	// Студент 5 в группе теоретического занятия
	store.add(&domain.Booking{
		ID:              10,
		Kind:            domain.KindClass,
		InstructorID:    1,
		ResourceID:      ptr(int64(3)),
		ScheduledTime:   monday(10, 0),
		DurationMinutes: 60,
		StudentIDs:      []int64{4, 5},
		Status:          domain.StatusScheduled,
	})
	// Студент 6 на практическом уроке
	practice := lesson(11, 2, monday(15, 0), 90)
	practice.StudentID = ptr(int64(6))
	store.add(practice)

	detector := NewConflictDetector(store, 0)
	ctx := context.Background()

	requireCode(t,
		detector.CheckStudents(ctx, FieldEnrollmentID, []int64{5}, domain.TimeWindow{Start: monday(10, 30), DurationMinutes: 90}, Exclusion{}),
		FieldEnrollmentID, CodeStudentConflict)

	requireCode(t,
		detector.CheckStudents(ctx, FieldStudentIDs, []int64{1, 6}, domain.TimeWindow{Start: monday(16, 0), DurationMinutes: 60}, Exclusion{}),
		FieldStudentIDs, CodeStudentConflict)

	assert.NoError(t,
		detector.CheckStudents(ctx, FieldStudentIDs, []int64{1, 2}, domain.TimeWindow{Start: monday(10, 0), DurationMinutes: 60}, Exclusion{}))
}

func TestConflictDetector_CheckResource(t *testing.T) {
	store := &memoryBookings{}
	b := lesson(1, 7, monday(10, 0), 90)
	b.ResourceID = ptr(int64(3))
	store.add(b)

	detector := NewConflictDetector(store, 0)

	requireCode(t,
		detector.CheckResource(context.Background(), 3, domain.TimeWindow{Start: monday(11, 0), DurationMinutes: 60}, Exclusion{}),
		FieldResourceID, CodeResourceConflict)
	assert.NoError(t,
		detector.CheckResource(context.Background(), 3, domain.TimeWindow{Start: monday(11, 30), DurationMinutes: 60}, Exclusion{}))
}

func TestConflictDetector_PatternExclusion(t *testing.T) {
	store := &memoryBookings{}
	store.add(&domain.Booking{
		ID: 1, Kind: domain.KindClass, InstructorID: 7, PatternID: ptr(int64(99)),
		ScheduledTime: monday(10, 0), DurationMinutes: 60, Status: domain.StatusScheduled,
	})
	detector := NewConflictDetector(store, 0)
	window := domain.TimeWindow{Start: monday(10, 0), DurationMinutes: 60}

	assert.NoError(t, detector.CheckInstructor(context.Background(), 7, window, Exclusion{PatternID: ptr(int64(99))}))
	requireCode(t,
		detector.CheckInstructor(context.Background(), 7, window, Exclusion{PatternID: ptr(int64(100))}),
		FieldInstructorID, CodeInstructorConflict)
}

func TestConflictDetector_AccessorError(t *testing.T) {
	store := &memoryBookings{err: errors.New("connection refused")}
	detector := NewConflictDetector(store, 0)

	err := detector.CheckInstructor(context.Background(), 7, domain.TimeWindow{Start: monday(10, 0), DurationMinutes: 60}, Exclusion{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccessor)
	_, isValidation := AsValidationError(err)
	assert.False(t, isValidation)
}

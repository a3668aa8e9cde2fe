package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindActiveBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetLessonByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetClassByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instructor), args.Error(1)
}

func (m *MockCatalog) ListAvailability(ctx context.Context, instructorID int64) ([]domain.AvailabilityEntry, error) {
	args := m.Called(ctx, instructorID)
	return args.Get(0).([]domain.AvailabilityEntry), args.Error(1)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Resolve(ctx context.Context, intent scheduling.BookingIntent, prior *domain.Booking) (*scheduling.BookingContext, error) {
	args := m.Called(ctx, intent, prior)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.BookingContext), args.Error(1)
}

func (m *MockValidator) Validate(ctx context.Context, bc *scheduling.BookingContext) error {
	return m.Called(ctx, bc).Error(0)
}

type countingMetrics struct {
	calls [][3]string
}

func (c *countingMetrics) IncBookingValidation(kind, result, code string) {
	c.calls = append(c.calls, [3]string{kind, result, code})
}

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCheck_ValidDoesNotPersist(t *testing.T) {
	validator := new(MockValidator)
	metrics := &countingMetrics{}
	uc := NewUseCase(new(MockBookingRepository), new(MockCatalog), validator, metrics, time.UTC, 0, nopLogger{})

	bc := &scheduling.BookingContext{Kind: domain.KindLesson}
	validator.On("Resolve", mock.Anything, mock.Anything, (*domain.Booking)(nil)).Return(bc, nil)
	validator.On("Validate", mock.Anything, bc).Return(nil)

	resp, err := uc.Check(context.Background(), &CheckRequest{Intent: scheduling.BookingIntent{Kind: domain.KindLesson}})

	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, [][3]string{{"lesson", "dry_run", ""}}, metrics.calls)
}

func TestCheck_RejectionIsData(t *testing.T) {
	validator := new(MockValidator)
	uc := NewUseCase(new(MockBookingRepository), new(MockCatalog), validator, &countingMetrics{}, time.UTC, 0, nopLogger{})

	bc := &scheduling.BookingContext{Kind: domain.KindClass}
	validator.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(bc, nil)
	validator.On("Validate", mock.Anything, bc).
		Return(scheduling.NewFieldError(scheduling.FieldResourceID, scheduling.CodeResourceConflict, "room busy"))

	resp, err := uc.Check(context.Background(), &CheckRequest{Intent: scheduling.BookingIntent{Kind: domain.KindClass}})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, []string{"resourceConflict"}, resp.Errors[scheduling.FieldResourceID])
	assert.Equal(t, "room busy", resp.Detail)
}

func TestCheck_EditLoadsPrior(t *testing.T) {
	repo := new(MockBookingRepository)
	validator := new(MockValidator)
	uc := NewUseCase(repo, new(MockCatalog), validator, &countingMetrics{}, time.UTC, 0, nopLogger{})

	prior := &domain.Booking{ID: 3, Kind: domain.KindClass}
	bc := &scheduling.BookingContext{Kind: domain.KindClass, Prior: prior}
	repo.On("GetClassByID", mock.Anything, int64(3)).Return(prior, nil)
	validator.On("Resolve", mock.Anything, mock.Anything, prior).Return(bc, nil)
	validator.On("Validate", mock.Anything, bc).Return(nil)

	resp, err := uc.Check(context.Background(), &CheckRequest{
		BookingID: ptr.Ptr(int64(3)),
		Intent:    scheduling.BookingIntent{Kind: domain.KindClass},
	})

	require.NoError(t, err)
	assert.True(t, resp.Valid)
	repo.AssertExpectations(t)
}

func TestCheck_EditMissingBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	uc := NewUseCase(repo, new(MockCatalog), new(MockValidator), &countingMetrics{}, time.UTC, 0, nopLogger{})

	repo.On("GetLessonByID", mock.Anything, int64(8)).Return(nil, domain.ErrNotFound)

	_, err := uc.Check(context.Background(), &CheckRequest{
		BookingID: ptr.Ptr(int64(8)),
		Intent:    scheduling.BookingIntent{Kind: domain.KindLesson},
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCheck_UnknownKind(t *testing.T) {
	uc := NewUseCase(new(MockBookingRepository), new(MockCatalog), new(MockValidator), &countingMetrics{}, time.UTC, 0, nopLogger{})

	_, err := uc.Check(context.Background(), &CheckRequest{Intent: scheduling.BookingIntent{Kind: "seminar"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFreeSlots_MarksBusySlots(t *testing.T) {
	repo := new(MockBookingRepository)
	catalog := new(MockCatalog)
	uc := NewUseCase(repo, catalog, new(MockValidator), &countingMetrics{}, time.UTC, 0, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	catalog.On("GetInstructor", mock.Anything, int64(1)).Return(&domain.Instructor{ID: 1}, nil)
	catalog.On("ListAvailability", mock.Anything, int64(1)).Return([]domain.AvailabilityEntry{
		{InstructorID: 1, Day: domain.Monday, Hours: []string{"9:00", "10:30", "12:00"}},
	}, nil)
	repo.On("FindActiveBookings", mock.Anything, mock.MatchedBy(func(f domain.BookingFilter) bool {
		return *f.InstructorID == 1 && f.From.Equal(monday.Add(-8*time.Hour))
	})).Return([]*domain.Booking{
		// 10:00-11:30 пересекается со слотом 10:30 и только граничит со слотом 09:00
		{Kind: domain.KindLesson, InstructorID: 1, Status: domain.StatusScheduled,
			ScheduledTime: monday.Add(10 * time.Hour), DurationMinutes: 90},
	}, nil)

	resp, err := uc.FreeSlots(context.Background(), &FreeSlotsRequest{InstructorID: 1, Date: monday, DurationMinutes: 60})

	require.NoError(t, err)
	assert.Equal(t, domain.Monday, resp.Day)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].Free)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[1].StartTime)
	assert.False(t, resp.Slots[1].Free)
	assert.True(t, resp.Slots[2].Free)
}

func TestFreeSlots_DayOff(t *testing.T) {
	catalog := new(MockCatalog)
	uc := NewUseCase(new(MockBookingRepository), catalog, new(MockValidator), &countingMetrics{}, time.UTC, 0, nopLogger{})

	catalog.On("GetInstructor", mock.Anything, int64(1)).Return(&domain.Instructor{ID: 1}, nil)
	catalog.On("ListAvailability", mock.Anything, int64(1)).Return([]domain.AvailabilityEntry{}, nil)

	resp, err := uc.FreeSlots(context.Background(), &FreeSlotsRequest{
		InstructorID: 1,
		Date:         time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.Sunday, resp.Day)
	assert.Empty(t, resp.Slots)
}

func TestFreeSlots_InvalidDuration(t *testing.T) {
	uc := NewUseCase(new(MockBookingRepository), new(MockCatalog), new(MockValidator), &countingMetrics{}, time.UTC, 0, nopLogger{})

	_, err := uc.FreeSlots(context.Background(), &FreeSlotsRequest{InstructorID: 1, Date: time.Now(), DurationMinutes: 600})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFreeSlots_UsesConfiguredLookback(t *testing.T) {
	repo := new(MockBookingRepository)
	catalog := new(MockCatalog)
	uc := NewUseCase(repo, catalog, new(MockValidator), &countingMetrics{}, time.UTC, 12*time.Hour, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	catalog.On("GetInstructor", mock.Anything, int64(1)).Return(&domain.Instructor{ID: 1}, nil)
	catalog.On("ListAvailability", mock.Anything, int64(1)).Return([]domain.AvailabilityEntry{
		{InstructorID: 1, Day: domain.Monday, Hours: []string{"9:00"}},
	}, nil)
	repo.On("FindActiveBookings", mock.Anything, mock.MatchedBy(func(f domain.BookingFilter) bool {
		return f.From.Equal(monday.Add(-12 * time.Hour))
	})).Return([]*domain.Booking{}, nil)

	_, err := uc.FreeSlots(context.Background(), &FreeSlotsRequest{InstructorID: 1, Date: monday})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNewUseCase_LookbackFloor(t *testing.T) {
	uc := NewUseCase(new(MockBookingRepository), new(MockCatalog), new(MockValidator), &countingMetrics{}, time.UTC, time.Hour, nopLogger{})
	assert.Equal(t, domain.DefaultConflictLookback, uc.lookback)
}

func TestFreeSlots_RequestedTime(t *testing.T) {
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	busy := []*domain.Booking{
		{Kind: domain.KindLesson, InstructorID: 1, Status: domain.StatusScheduled,
			ScheduledTime: monday.Add(10 * time.Hour), DurationMinutes: 90},
	}

	tests := []struct {
		name        string
		at          string
		wantWorking bool
		wantFree    bool
		wantReason  scheduling.Code
	}{
		{name: "working and free", at: "12:15", wantWorking: true, wantFree: true},
		{name: "working but busy", at: "10:45", wantWorking: true, wantFree: false},
		{name: "before working hours", at: "07:00", wantReason: scheduling.CodeOutsideAvailability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBookingRepository)
			catalog := new(MockCatalog)
			uc := NewUseCase(repo, catalog, new(MockValidator), &countingMetrics{}, time.UTC, 0, nopLogger{})
			uc.timeProvider = fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

			catalog.On("GetInstructor", mock.Anything, int64(1)).Return(&domain.Instructor{ID: 1}, nil)
			catalog.On("ListAvailability", mock.Anything, int64(1)).Return([]domain.AvailabilityEntry{
				{InstructorID: 1, Day: domain.Monday, Hours: []string{"9:00", "10:30", "12:00"}},
			}, nil)
			repo.On("FindActiveBookings", mock.Anything, mock.Anything).Return(busy, nil)

			resp, err := uc.FreeSlots(context.Background(), &FreeSlotsRequest{
				InstructorID: 1, Date: monday, DurationMinutes: 30, At: tt.at,
			})

			require.NoError(t, err)
			require.NotNil(t, resp.Requested)
			assert.Equal(t, tt.wantWorking, resp.Requested.Working)
			assert.Equal(t, tt.wantFree, resp.Requested.Free)
			assert.Equal(t, tt.wantReason, resp.Requested.Reason)
		})
	}
}

func TestFreeSlots_RequestedTimeMalformed(t *testing.T) {
	catalog := new(MockCatalog)
	uc := NewUseCase(new(MockBookingRepository), catalog, new(MockValidator), &countingMetrics{}, time.UTC, 0, nopLogger{})

	catalog.On("GetInstructor", mock.Anything, int64(1)).Return(&domain.Instructor{ID: 1}, nil)
	catalog.On("ListAvailability", mock.Anything, int64(1)).Return([]domain.AvailabilityEntry{
		{InstructorID: 1, Day: domain.Monday, Hours: []string{"9:00"}},
	}, nil)

	_, err := uc.FreeSlots(context.Background(), &FreeSlotsRequest{
		InstructorID: 1,
		Date:         time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		At:           "25:99",
	})

	vErr, ok := scheduling.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, string(scheduling.CodeInvalidTimeFormat), vErr.FirstCode())
}

func TestBuildSlots_SkipsPastSlots(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	now := day.Add(11 * time.Hour)

	slots := buildSlots([]types.TimeString{"09:00", "11:00", "14:00"}, day, time.UTC, 60, now, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("11:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("14:00"), slots[1].StartTime)
}

func TestCountOverlappingBookings_IgnoresCanceled(t *testing.T) {
	at := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	window := domain.TimeWindow{Start: at, DurationMinutes: 60}

	bookings := []*domain.Booking{
		{Status: domain.StatusCanceled, ScheduledTime: at, DurationMinutes: 60},
		{Status: domain.StatusCompleted, ScheduledTime: at.Add(30 * time.Minute), DurationMinutes: 60},
		{Status: domain.StatusScheduled, ScheduledTime: at.Add(time.Hour), DurationMinutes: 60},
	}

	assert.Equal(t, 1, countOverlappingBookings(window, bookings))
}

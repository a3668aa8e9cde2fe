package schedule_class

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
)

type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) CreateClass(ctx context.Context, class *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, class)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Booking) *domain.Booking); ok {
		return fn(ctx, class), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockClassRepository) UpdateClass(ctx context.Context, class *domain.Booking) error {
	return m.Called(ctx, class).Error(0)
}

func (m *MockClassRepository) GetClassByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
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

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncBookingValidation(kind, result, code string) {
	m.Called(kind, result, code)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type ScheduleClassSuite struct {
	suite.Suite

	repo      *MockClassRepository
	validator *MockValidator
	metrics   *MockMetrics
	uc        *UseCase
	start     time.Time
}

func TestScheduleClassSuite(t *testing.T) {
	suite.Run(t, new(ScheduleClassSuite))
}

func (s *ScheduleClassSuite) SetupTest() {
	s.repo = new(MockClassRepository)
	s.validator = new(MockValidator)
	s.metrics = new(MockMetrics)
	s.uc = NewUseCase(s.repo, s.validator, inlineTx{}, s.metrics, nopLogger{})
	s.start = time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)
}

func (s *ScheduleClassSuite) classContext(prior *domain.Booking, roster []int64) *scheduling.BookingContext {
	return &scheduling.BookingContext{
		Kind:            domain.KindClass,
		Prior:           prior,
		Instructor:      &domain.Instructor{ID: 1},
		Resource:        &domain.Resource{ID: 2, MaxCapacity: 10, Category: domain.CategoryB, IsAvailable: true},
		Course:          &domain.Course{ID: 3, Name: "B theory", Category: domain.CategoryB, Type: domain.CourseTheory},
		Start:           ptr.Ptr(s.start),
		DurationMinutes: 60,
		MaxStudents:     ptr.Ptr(8),
		StudentIDs:      roster,
		Status:          domain.StatusScheduled,
		Name:            "B theory - 2025-03-03 14:00",
	}
}

func (s *ScheduleClassSuite) TestCreate_PersistsRoster() {
	bc := s.classContext(nil, []int64{10, 11})

	s.validator.On("Resolve", mock.Anything, mock.MatchedBy(func(i scheduling.BookingIntent) bool {
		return i.Kind == domain.KindClass && len(*i.StudentIDs) == 2
	}), (*domain.Booking)(nil)).Return(bc, nil)
	s.validator.On("Validate", mock.Anything, bc).Return(nil)
	s.repo.On("CreateClass", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Kind == domain.KindClass && b.MaxStudents == 8 && len(b.StudentIDs) == 2 && *b.ResourceID == 2
	})).Return(func(_ context.Context, b *domain.Booking) *domain.Booking {
		b.ID = 100
		return b
	}, nil)
	s.metrics.On("IncBookingValidation", "class", "accepted", "").Once()

	resp, err := s.uc.Create(context.Background(), &Request{
		CourseID:      ptr.Ptr(int64(3)),
		InstructorID:  ptr.Ptr(int64(1)),
		ResourceID:    ptr.Ptr(int64(2)),
		ScheduledTime: ptr.Ptr(s.start),
		MaxStudents:   ptr.Ptr(8),
		StudentIDs:    &[]int64{10, 11},
	})

	s.Require().NoError(err)
	s.Equal(int64(100), resp.ID)
	s.Equal("B theory - 2025-03-03 14:00", resp.Name)
	s.Equal(6, resp.AvailableSpots)
	s.metrics.AssertExpectations(s.T())
}

func (s *ScheduleClassSuite) TestCreate_CapacityRejected() {
	bc := s.classContext(nil, nil)
	rejection := scheduling.NewFieldError(scheduling.FieldMaxStudents, scheduling.CodeCapacityExceeded, "too many")

	s.validator.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(bc, nil)
	s.validator.On("Validate", mock.Anything, bc).Return(rejection)
	s.metrics.On("IncBookingValidation", "class", "rejected", "capacityExceeded").Once()

	_, err := s.uc.Create(context.Background(), &Request{MaxStudents: ptr.Ptr(11)})

	vErr, ok := scheduling.AsValidationError(err)
	s.Require().True(ok)
	s.Equal([]string{"capacityExceeded"}, vErr.Fields[scheduling.FieldMaxStudents])
	s.repo.AssertNotCalled(s.T(), "CreateClass", mock.Anything, mock.Anything)
}

func (s *ScheduleClassSuite) TestUpdate_PassesPriorToResolve() {
	prior := &domain.Booking{ID: 7, Kind: domain.KindClass, InstructorID: 1, MaxStudents: 8,
		StudentIDs: []int64{10, 11}, ScheduledTime: s.start, DurationMinutes: 60, Status: domain.StatusScheduled}
	bc := s.classContext(prior, prior.StudentIDs)

	s.repo.On("GetClassByID", mock.Anything, int64(7)).Return(prior, nil)
	s.validator.On("Resolve", mock.Anything, mock.Anything, prior).Return(bc, nil)
	s.validator.On("Validate", mock.Anything, bc).Return(nil)
	s.repo.On("UpdateClass", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == 7 && len(b.StudentIDs) == 2
	})).Return(nil)
	s.metrics.On("IncBookingValidation", "class", "accepted", "").Once()

	resp, err := s.uc.Update(context.Background(), 7, &Request{DurationMinutes: ptr.Ptr(60)})

	s.Require().NoError(err)
	s.Equal(int64(7), resp.ID)
	s.repo.AssertExpectations(s.T())
}

func TestUpdate_ClassNotFound(t *testing.T) {
	repo := new(MockClassRepository)
	uc := NewUseCase(repo, new(MockValidator), inlineTx{}, new(MockMetrics), nopLogger{})

	repo.On("GetClassByID", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

	_, err := uc.Update(context.Background(), 1, &Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClassNotFound)
}

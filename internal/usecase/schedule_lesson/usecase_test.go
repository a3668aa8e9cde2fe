package schedule_lesson

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
)

type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) CreateLesson(ctx context.Context, lesson *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, lesson)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockLessonRepository) UpdateLesson(ctx context.Context, lesson *domain.Booking) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) GetLessonByID(ctx context.Context, id int64) (*domain.Booking, error) {
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
	args := m.Called(ctx, bc)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncBookingValidation(kind, result, code string) {
	m.Called(kind, result, code)
}

// inlineTx выполняет функцию без реальной транзакции
type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var start = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func lessonContext(prior *domain.Booking) *scheduling.BookingContext {
	return &scheduling.BookingContext{
		Kind:            domain.KindLesson,
		Prior:           prior,
		Instructor:      &domain.Instructor{ID: 1, Licenses: domain.LicenseSet{domain.CategoryB}},
		Enrollment:      &domain.Enrollment{ID: 5, StudentID: 50, CourseID: 3, Type: domain.CoursePractice},
		Course:          &domain.Course{ID: 3, Category: domain.CategoryB, Type: domain.CoursePractice},
		Start:           ptr.Ptr(start),
		DurationMinutes: 90,
		Status:          domain.StatusScheduled,
	}
}

func newUseCase() (*UseCase, *MockLessonRepository, *MockValidator, *MockMetrics) {
	repo := new(MockLessonRepository)
	validator := new(MockValidator)
	metrics := new(MockMetrics)
	return NewUseCase(repo, validator, inlineTx{}, metrics, nopLogger{}), repo, validator, metrics
}

func TestCreate_Success(t *testing.T) {
	uc, repo, validator, metrics := newUseCase()
	bc := lessonContext(nil)

	validator.On("Resolve", mock.Anything, mock.Anything, (*domain.Booking)(nil)).Return(bc, nil)
	validator.On("Validate", mock.Anything, bc).Return(nil)
	repo.On("CreateLesson", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.InstructorID == 1 && *b.EnrollmentID == 5 && *b.StudentID == 50 && b.ScheduledTime.Equal(start)
	})).Return(&domain.Booking{
		ID: 77, Kind: domain.KindLesson, InstructorID: 1, EnrollmentID: ptr.Ptr(int64(5)), StudentID: ptr.Ptr(int64(50)),
		CourseID: 3, ScheduledTime: start, DurationMinutes: 90, Status: domain.StatusScheduled,
	}, nil)
	metrics.On("IncBookingValidation", "lesson", "accepted", "").Once()

	resp, err := uc.Create(context.Background(), &Request{
		EnrollmentID:  ptr.Ptr(int64(5)),
		InstructorID:  ptr.Ptr(int64(1)),
		ScheduledTime: ptr.Ptr(start),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, int64(50), resp.StudentID)
	assert.Equal(t, "SCHEDULED", resp.Status)
	repo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestCreate_IntentCarriesLessonKind(t *testing.T) {
	uc, _, validator, metrics := newUseCase()

	validator.On("Resolve", mock.Anything, mock.MatchedBy(func(i scheduling.BookingIntent) bool {
		return i.Kind == domain.KindLesson && *i.EnrollmentID == 5 && i.CourseID == nil
	}), (*domain.Booking)(nil)).Return(nil, scheduling.NewFieldError(scheduling.FieldEnrollmentID, scheduling.CodeDoesNotExist, "missing"))
	metrics.On("IncBookingValidation", "lesson", "rejected", "doesNotExist").Once()

	_, err := uc.Create(context.Background(), &Request{EnrollmentID: ptr.Ptr(int64(5))})

	vErr, ok := scheduling.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, vErr.HasCode(scheduling.CodeDoesNotExist))
	validator.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestCreate_Rejected(t *testing.T) {
	uc, repo, validator, metrics := newUseCase()
	bc := lessonContext(nil)

	rejection := scheduling.NewFieldError(scheduling.FieldInstructorID, scheduling.CodeInstructorConflict, "busy")
	validator.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(bc, nil)
	validator.On("Validate", mock.Anything, bc).Return(rejection)
	metrics.On("IncBookingValidation", "lesson", "rejected", "instructorConflict").Once()

	resp, err := uc.Create(context.Background(), &Request{})

	assert.Nil(t, resp)
	assert.Same(t, rejection, err)
	repo.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestCreate_RepositoryFailureIsInternal(t *testing.T) {
	uc, repo, validator, metrics := newUseCase()
	bc := lessonContext(nil)

	validator.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(bc, nil)
	validator.On("Validate", mock.Anything, bc).Return(nil)
	repo.On("CreateLesson", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	metrics.On("IncBookingValidation", "lesson", "error", "").Once()

	_, err := uc.Create(context.Background(), &Request{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	metrics.AssertExpectations(t)
}

func TestUpdate_MergesWithPrior(t *testing.T) {
	uc, repo, validator, metrics := newUseCase()
	prior := &domain.Booking{
		ID: 9, Kind: domain.KindLesson, InstructorID: 1, EnrollmentID: ptr.Ptr(int64(5)), StudentID: ptr.Ptr(int64(50)),
		ScheduledTime: start.Add(-time.Hour), DurationMinutes: 90, Status: domain.StatusScheduled,
	}
	bc := lessonContext(prior)

	repo.On("GetLessonByID", mock.Anything, int64(9)).Return(prior, nil)
	validator.On("Resolve", mock.Anything, mock.Anything, prior).Return(bc, nil)
	validator.On("Validate", mock.Anything, bc).Return(nil)
	repo.On("UpdateLesson", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == 9 && b.ScheduledTime.Equal(start)
	})).Return(nil)
	metrics.On("IncBookingValidation", "lesson", "accepted", "").Once()

	resp, err := uc.Update(context.Background(), 9, &Request{ScheduledTime: ptr.Ptr(start)})

	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.True(t, resp.ScheduledTime.Equal(start))
	repo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	uc, repo, validator, metrics := newUseCase()

	repo.On("GetLessonByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

	_, err := uc.Update(context.Background(), 404, &Request{})

	assert.ErrorIs(t, err, ErrLessonNotFound)
	validator.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	metrics.AssertNotCalled(t, "IncBookingValidation", mock.Anything, mock.Anything, mock.Anything)
}

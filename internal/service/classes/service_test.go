package classes

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

type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) GetClassByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockClassRepository) AddStudents(ctx context.Context, classID int64, studentIDs []int64) error {
	return m.Called(ctx, classID, studentIDs).Error(0)
}

func (m *MockClassRepository) RemoveStudent(ctx context.Context, classID, studentID int64) error {
	return m.Called(ctx, classID, studentID).Error(0)
}

func (m *MockClassRepository) UpdateClassStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) EnrolledStudentIDs(ctx context.Context, courseID int64, studentIDs []int64) ([]int64, error) {
	args := m.Called(ctx, courseID, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockConflictChecker struct {
	mock.Mock
}

func (m *MockConflictChecker) CheckStudents(ctx context.Context, field string, studentIDs []int64, window domain.TimeWindow, excl scheduling.Exclusion) error {
	return m.Called(ctx, field, studentIDs, window, excl).Error(0)
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

type fixture struct {
	classes   *MockClassRepository
	catalog   *MockCatalogRepository
	conflicts *MockConflictChecker
	metrics   *MockMetrics
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		classes:   new(MockClassRepository),
		catalog:   new(MockCatalogRepository),
		conflicts: new(MockConflictChecker),
		metrics:   new(MockMetrics),
	}
	f.svc = NewService(f.classes, f.catalog, f.conflicts, inlineTx{}, f.metrics, nopLogger{})
	return f
}

func testClass(roster ...int64) *domain.Booking {
	return &domain.Booking{
		ID:              30,
		Kind:            domain.KindClass,
		Name:            "B theory - 2025-03-03 10:00",
		CourseID:        3,
		InstructorID:    1,
		ResourceID:      ptr.Ptr(int64(2)),
		ScheduledTime:   time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		MaxStudents:     2,
		StudentIDs:      roster,
		Status:          domain.StatusScheduled,
	}
}

func TestEnroll_AddsStudent(t *testing.T) {
	f := newFixture()
	class := testClass(10)

	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(class, nil)
	f.catalog.On("EnrolledStudentIDs", mock.Anything, int64(3), []int64{11}).Return([]int64{11}, nil)
	f.conflicts.On("CheckStudents", mock.Anything, scheduling.FieldStudentIDs, []int64{11}, class.Window(),
		scheduling.Exclusion{Ref: &domain.BookingRef{Kind: domain.KindClass, ID: 30}}).Return(nil)
	f.classes.On("AddStudents", mock.Anything, int64(30), []int64{11}).Return(nil).Once()
	f.metrics.On("IncBookingValidation", "enrollment", "accepted", "").Once()

	resp, err := f.svc.Enroll(context.Background(), 30, 11)

	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, resp.StudentIDs)
	assert.Equal(t, 0, resp.AvailableSpots)
	f.classes.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestEnroll_RosterRules(t *testing.T) {
	tests := []struct {
		name    string
		class   *domain.Booking
		student int64
		wantErr error
	}{
		{name: "already enrolled", class: testClass(10), student: 10, wantErr: ErrAlreadyEnrolled},
		{name: "full", class: testClass(10, 12), student: 11, wantErr: ErrClassFull},
		{
			name: "canceled class",
			class: func() *domain.Booking {
				c := testClass()
				c.Status = domain.StatusCanceled
				return c
			}(),
			student: 11,
			wantErr: ErrClassNotScheduled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(tt.class, nil)

			resp, err := f.svc.Enroll(context.Background(), 30, tt.student)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			f.classes.AssertNotCalled(t, "AddStudents", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEnroll_StudentWithoutCourseEnrollment(t *testing.T) {
	f := newFixture()
	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(testClass(), nil)
	f.catalog.On("EnrolledStudentIDs", mock.Anything, int64(3), []int64{11}).Return([]int64{}, nil)
	f.metrics.On("IncBookingValidation", "enrollment", "rejected", "studentNotEnrolledToCourse").Once()

	_, err := f.svc.Enroll(context.Background(), 30, 11)

	vErr, ok := scheduling.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"studentNotEnrolledToCourse"}, vErr.Fields[scheduling.FieldStudentIDs])
	f.metrics.AssertExpectations(t)
}

func TestEnroll_StudentBusy(t *testing.T) {
	f := newFixture()
	busy := scheduling.NewFieldError(scheduling.FieldStudentIDs, scheduling.CodeStudentConflict, "student 11 is busy")

	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(testClass(), nil)
	f.catalog.On("EnrolledStudentIDs", mock.Anything, int64(3), []int64{11}).Return([]int64{11}, nil)
	f.conflicts.On("CheckStudents", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(busy)
	f.metrics.On("IncBookingValidation", "enrollment", "rejected", "studentConflict").Once()

	_, err := f.svc.Enroll(context.Background(), 30, 11)

	assert.Same(t, busy, err)
	f.classes.AssertNotCalled(t, "AddStudents", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnroll_ClassNotFound(t *testing.T) {
	f := newFixture()
	f.classes.On("GetClassByID", mock.Anything, int64(30)).
		Return(nil, errors.Join(errors.New("booking.repository"), domain.ErrNotFound))

	_, err := f.svc.Enroll(context.Background(), 30, 11)

	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestUnenroll(t *testing.T) {
	f := newFixture()
	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(testClass(10, 11), nil)
	f.classes.On("RemoveStudent", mock.Anything, int64(30), int64(10)).Return(nil).Once()

	resp, err := f.svc.Unenroll(context.Background(), 30, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{11}, resp.StudentIDs)
	assert.Equal(t, 1, resp.AvailableSpots)
}

func TestUnenroll_NotEnrolled(t *testing.T) {
	f := newFixture()
	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(testClass(11), nil)

	_, err := f.svc.Unenroll(context.Background(), 30, 10)

	assert.ErrorIs(t, err, ErrNotEnrolled)
	f.classes.AssertNotCalled(t, "RemoveStudent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel(t *testing.T) {
	f := newFixture()
	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(testClass(10), nil)
	f.classes.On("UpdateClassStatus", mock.Anything, int64(30), domain.StatusCanceled).Return(nil).Once()

	resp, err := f.svc.Cancel(context.Background(), 30)

	require.NoError(t, err)
	assert.Equal(t, "CANCELED", resp.Status)
	assert.Equal(t, []int64{10}, resp.StudentIDs)
}

func TestCancel_AlreadyCanceled(t *testing.T) {
	f := newFixture()
	class := testClass()
	class.Status = domain.StatusCanceled
	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(class, nil)

	_, err := f.svc.Cancel(context.Background(), 30)

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_RepositoryFailure(t *testing.T) {
	f := newFixture()
	f.classes.On("GetClassByID", mock.Anything, int64(30)).Return(testClass(), nil)
	f.classes.On("UpdateClassStatus", mock.Anything, int64(30), domain.StatusCanceled).Return(errors.New("deadlock"))

	_, err := f.svc.Cancel(context.Background(), 30)

	assert.ErrorIs(t, err, ErrInternal)
}

package schedule_class

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	scheduleClass "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_class"
)

type MockClassUseCase struct {
	mock.Mock
}

func (m *MockClassUseCase) Create(ctx context.Context, req *scheduleClass.Request) (*scheduleClass.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduleClass.Response), args.Error(1)
}

func (m *MockClassUseCase) Update(ctx context.Context, classID int64, req *scheduleClass.Request) (*scheduleClass.Response, error) {
	args := m.Called(ctx, classID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduleClass.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func classResponse() *scheduleClass.Response {
	start := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	return &scheduleClass.Response{
		ID:              11,
		Name:            "Theory B - 2025-03-03 10:00",
		CourseID:        1,
		InstructorID:    1,
		ResourceID:      5,
		ScheduledTime:   start,
		DurationMinutes: 60,
		MaxStudents:     10,
		StudentIDs:      []int64{21, 22},
		AvailableSpots:  8,
		Status:          "SCHEDULED",
		CreatedAt:       start,
		UpdatedAt:       start,
	}
}

func TestHandler_Create(t *testing.T) {
	uc := new(MockClassUseCase)
	h := NewHandler(uc, nopLogger{})

	uc.On("Create", mock.Anything, mock.MatchedBy(func(req *scheduleClass.Request) bool {
		return req.StudentIDs != nil && len(*req.StudentIDs) == 2 && *req.MaxStudents == 10
	})).Return(classResponse(), nil)

	body := `{"course_id":1,"instructor_id":1,"resource_id":5,"scheduled_time":"2025-03-03T10:00:00Z","max_students":10,"student_ids":[21,22]}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/classes", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp ClassResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 8, resp.AvailableSpots)
	assert.Equal(t, "2025-03-03T11:00:00Z", resp.EndTime)
	uc.AssertExpectations(t)
}

func TestHandler_Create_CapacityRejected(t *testing.T) {
	uc := new(MockClassUseCase)
	h := NewHandler(uc, nopLogger{})

	uc.On("Create", mock.Anything, mock.Anything).
		Return(nil, scheduling.NewFieldError(scheduling.FieldMaxStudents, scheduling.CodeCapacityExceeded, "room holds 8"))

	body := `{"course_id":1,"instructor_id":1,"resource_id":5,"scheduled_time":"2025-03-03T10:00:00Z","max_students":30}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/classes", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"capacityExceeded"}, resp.Errors[scheduling.FieldMaxStudents])
	assert.Equal(t, "room holds 8", resp.Detail)
}

func TestHandler_Update_NotFound(t *testing.T) {
	uc := new(MockClassUseCase)
	h := NewHandler(uc, nopLogger{})

	uc.On("Update", mock.Anything, int64(11), mock.Anything).Return(nil, scheduleClass.ErrClassNotFound)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/classes/11", strings.NewReader(`{"status":"canceled"}`))
	req = mux.SetURLVars(req, map[string]string{"classId": "11"})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_Update_BadStatus(t *testing.T) {
	uc := new(MockClassUseCase)
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/classes/11", strings.NewReader(`{"status":"archived"}`))
	req = mux.SetURLVars(req, map[string]string{"classId": "11"})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

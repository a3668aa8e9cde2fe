package bookings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidLessonID     = "некорректный ID урока"
	msgInvalidClassID      = "некорректный ID занятия"
	msgInvalidStudentID    = "некорректный ID студента"
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidParams       = "некорректные параметры запроса"
	msgInvalidTimeRange    = "некорректный период, максимум 31 день"
	msgLessonNotFound      = "урок не найден"
	msgClassNotFound       = "занятие не найдено"
	msgCannotCancel        = "урок не может быть отменен"
)

type Handler struct {
	service BookingService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service BookingService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// GetLesson GET /api/v1/lessons/{lessonId}
func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := handlers.PathInt64(r, "lessonId")
	if err != nil {
		h.logger.Warn("GET /lessons/{id} - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonID)
	if err != nil {
		h.respondError(w, "GET /lessons/{id}", lessonID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceBooking(lesson))
}

// GetClass GET /api/v1/classes/{classId}
func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	classID, err := handlers.PathInt64(r, "classId")
	if err != nil {
		h.logger.Warn("GET /classes/{id} - Invalid class ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClassID)
		return
	}

	class, err := h.service.GetClass(r.Context(), classID)
	if err != nil {
		h.respondError(w, "GET /classes/{id}", classID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceBooking(class))
}

// CancelLesson PATCH /api/v1/lessons/{lessonId}/cancel
func (h *Handler) CancelLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := handlers.PathInt64(r, "lessonId")
	if err != nil {
		h.logger.Warn("PATCH /lessons/{id}/cancel - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	lesson, err := h.service.CancelLesson(r.Context(), lessonID)
	if err != nil {
		h.respondError(w, "PATCH /lessons/{id}/cancel", lessonID, err)
		return
	}

	h.logger.Info("PATCH /lessons/{id}/cancel - Lesson canceled: lesson_id=%d", lessonID)
	handlers.RespondJSON(w, http.StatusOK, fromServiceBooking(lesson))
}

// StudentSchedule GET /api/v1/students/{studentId}/schedule
// Query params: from, to, include_canceled (опционально)
func (h *Handler) StudentSchedule(w http.ResponseWriter, r *http.Request) {
	h.schedule(w, r, "GET /students/{id}/schedule", "studentId", msgInvalidStudentID, h.service.StudentSchedule)
}

// InstructorSchedule GET /api/v1/instructors/{instructorId}/schedule
// Query params: from, to, include_canceled (опционально)
func (h *Handler) InstructorSchedule(w http.ResponseWriter, r *http.Request) {
	h.schedule(w, r, "GET /instructors/{id}/schedule", "instructorId", msgInvalidInstructorID, h.service.InstructorSchedule)
}

func (h *Handler) schedule(
	w http.ResponseWriter,
	r *http.Request,
	route, param, msgInvalidID string,
	load func(ctx context.Context, id int64, req *bookings.ScheduleRequest) (*bookings.ScheduleResponse, error),
) {
	id, err := handlers.PathInt64(r, param)
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	serviceReq, err := ToScheduleRequest(r.URL.Query(), h.loc)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := load(r.Context(), id, serviceReq)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Schedule retrieved: id=%d, count=%d", route, id, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, fromServiceSchedule(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrLessonNotFound):
		h.logger.Warn("%s - Lesson not found: lesson_id=%d", route, id)
		handlers.RespondNotFound(w, msgLessonNotFound)

	case errors.Is(err, bookings.ErrClassNotFound):
		h.logger.Warn("%s - Class not found: class_id=%d", route, id)
		handlers.RespondNotFound(w, msgClassNotFound)

	case errors.Is(err, bookings.ErrCannotCancel):
		h.logger.Warn("%s - Cannot cancel: lesson_id=%d", route, id)
		handlers.RespondConflict(w, msgCannotCancel)

	case errors.Is(err, bookings.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range: id=%d", route, id)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	default:
		h.logger.Error("%s - Failed: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}

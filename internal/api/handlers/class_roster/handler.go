package class_roster

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/internal/service/classes"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClassID     = "некорректный ID занятия"
	msgInvalidStudentID   = "некорректный ID студента"
	msgClassNotFound      = "занятие не найдено"
	msgAlreadyEnrolled    = "студент уже записан на занятие"
	msgNotEnrolled        = "студент не записан на занятие"
	msgClassFull          = "в занятии нет свободных мест"
	msgClassNotScheduled  = "занятие уже прошло или отменено"
	msgCannotCancel       = "занятие не может быть отменено"
)

type Handler struct {
	service ClassService
	logger  Logger
}

func NewHandler(service ClassService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Enroll POST /api/v1/classes/{classId}/enroll
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	classID, studentID, ok := h.parse(w, r, "POST /classes/{id}/enroll")
	if !ok {
		return
	}

	class, err := h.service.Enroll(r.Context(), classID, studentID)
	if err != nil {
		h.respondError(w, "POST /classes/{id}/enroll", classID, err)
		return
	}

	h.logger.Info("POST /classes/{id}/enroll - Student enrolled: class_id=%d, student_id=%d", classID, studentID)
	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(class))
}

// Unenroll POST /api/v1/classes/{classId}/unenroll
func (h *Handler) Unenroll(w http.ResponseWriter, r *http.Request) {
	classID, studentID, ok := h.parse(w, r, "POST /classes/{id}/unenroll")
	if !ok {
		return
	}

	class, err := h.service.Unenroll(r.Context(), classID, studentID)
	if err != nil {
		h.respondError(w, "POST /classes/{id}/unenroll", classID, err)
		return
	}

	h.logger.Info("POST /classes/{id}/unenroll - Student removed: class_id=%d, student_id=%d", classID, studentID)
	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(class))
}

// Cancel PATCH /api/v1/classes/{classId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	classID, err := handlers.PathInt64(r, "classId")
	if err != nil {
		h.logger.Warn("PATCH /classes/{id}/cancel - Invalid class ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClassID)
		return
	}

	class, err := h.service.Cancel(r.Context(), classID)
	if err != nil {
		h.respondError(w, "PATCH /classes/{id}/cancel", classID, err)
		return
	}

	h.logger.Info("PATCH /classes/{id}/cancel - Class canceled: class_id=%d", classID)
	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(class))
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request, route string) (int64, int64, bool) {
	classID, err := handlers.PathInt64(r, "classId")
	if err != nil {
		h.logger.Warn("%s - Invalid class ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidClassID)
		return 0, 0, false
	}

	var req StudentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return 0, 0, false
	}
	if req.StudentID <= 0 {
		h.logger.Warn("%s - Invalid student ID: %d", route, req.StudentID)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return 0, 0, false
	}
	return classID, req.StudentID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, classID int64, err error) {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		h.logger.Warn("%s - Rejected: class_id=%d, error=%v", route, classID, vErr)
		handlers.RespondValidation(w, vErr)
		return
	}

	switch {
	case errors.Is(err, classes.ErrClassNotFound):
		h.logger.Warn("%s - Class not found: class_id=%d", route, classID)
		handlers.RespondNotFound(w, msgClassNotFound)

	case errors.Is(err, classes.ErrAlreadyEnrolled):
		handlers.RespondConflict(w, msgAlreadyEnrolled)

	case errors.Is(err, classes.ErrClassFull):
		handlers.RespondConflict(w, msgClassFull)

	case errors.Is(err, classes.ErrClassNotScheduled):
		handlers.RespondConflict(w, msgClassNotScheduled)

	case errors.Is(err, classes.ErrCannotCancel):
		handlers.RespondConflict(w, msgCannotCancel)

	case errors.Is(err, classes.ErrNotEnrolled):
		handlers.RespondBadRequest(w, msgNotEnrolled)

	default:
		h.logger.Error("%s - Failed: class_id=%d, error=%v", route, classID, err)
		handlers.RespondInternalError(w)
	}
}

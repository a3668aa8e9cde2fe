package schedule_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	scheduleLesson "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_lesson"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLessonID    = "некорректный ID урока"
	msgLessonNotFound     = "урок не найден"
)

type Handler struct {
	useCase LessonUseCase
	logger  Logger
}

func NewHandler(useCase LessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Create POST /api/v1/lessons
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	useCaseReq, ok := h.decode(w, r, "POST /lessons")
	if !ok {
		return
	}

	result, err := h.useCase.Create(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, "POST /lessons", 0, err)
		return
	}

	h.logger.Info("POST /lessons - Lesson scheduled: lesson_id=%d, instructor_id=%d", result.ID, result.InstructorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// Update PUT /api/v1/lessons/{lessonId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	lessonID, err := handlers.PathInt64(r, "lessonId")
	if err != nil {
		h.logger.Warn("PUT /lessons/{id} - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	useCaseReq, ok := h.decode(w, r, "PUT /lessons/{id}")
	if !ok {
		return
	}

	result, err := h.useCase.Update(r.Context(), lessonID, useCaseReq)
	if err != nil {
		h.respondError(w, "PUT /lessons/{id}", lessonID, err)
		return
	}

	h.logger.Info("PUT /lessons/{id} - Lesson updated: lesson_id=%d", lessonID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (*scheduleLesson.Request, bool) {
	var req LessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("%s - Failed to parse request: %v", route, err)
		if vErr, ok := scheduling.AsValidationError(err); ok {
			handlers.RespondValidation(w, vErr)
		} else {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return nil, false
	}
	return useCaseReq, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, lessonID int64, err error) {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		h.logger.Warn("%s - Lesson rejected: lesson_id=%d, error=%v", route, lessonID, vErr)
		handlers.RespondValidation(w, vErr)
		return
	}

	switch {
	case errors.Is(err, scheduleLesson.ErrLessonNotFound):
		h.logger.Warn("%s - Lesson not found: lesson_id=%d", route, lessonID)
		handlers.RespondNotFound(w, msgLessonNotFound)

	default:
		h.logger.Error("%s - Failed to save lesson: lesson_id=%d, error=%v", route, lessonID, err)
		handlers.RespondInternalError(w)
	}
}

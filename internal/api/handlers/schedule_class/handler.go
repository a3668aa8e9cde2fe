package schedule_class

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	scheduleClass "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_class"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClassID     = "некорректный ID занятия"
	msgClassNotFound      = "занятие не найдено"
)

type Handler struct {
	useCase ClassUseCase
	logger  Logger
}

func NewHandler(useCase ClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Create POST /api/v1/classes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /classes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.respondError(w, "POST /classes", 0, err)
		return
	}

	result, err := h.useCase.Create(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, "POST /classes", 0, err)
		return
	}

	h.logger.Info("POST /classes - Class scheduled: class_id=%d, students=%d", result.ID, len(result.StudentIDs))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// Update PUT /api/v1/classes/{classId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	classID, err := handlers.PathInt64(r, "classId")
	if err != nil {
		h.logger.Warn("PUT /classes/{id} - Invalid class ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClassID)
		return
	}

	var req ClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /classes/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.respondError(w, "PUT /classes/{id}", classID, err)
		return
	}

	result, err := h.useCase.Update(r.Context(), classID, useCaseReq)
	if err != nil {
		h.respondError(w, "PUT /classes/{id}", classID, err)
		return
	}

	h.logger.Info("PUT /classes/{id} - Class updated: class_id=%d", classID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, classID int64, err error) {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		h.logger.Warn("%s - Class rejected: class_id=%d, error=%v", route, classID, vErr)
		handlers.RespondValidation(w, vErr)
		return
	}

	switch {
	case errors.Is(err, scheduleClass.ErrClassNotFound):
		h.logger.Warn("%s - Class not found: class_id=%d", route, classID)
		handlers.RespondNotFound(w, msgClassNotFound)

	default:
		h.logger.Error("%s - Failed to save class: class_id=%d, error=%v", route, classID, err)
		handlers.RespondInternalError(w)
	}
}

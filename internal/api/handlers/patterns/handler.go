package patterns

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/internal/service/patterns"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPatternID   = "некорректный ID шаблона"
	msgPatternNotFound    = "шаблон расписания не найден"
)

type Handler struct {
	service PatternService
	logger  Logger
}

func NewHandler(service PatternService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/patterns
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /patterns - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pattern, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "POST /patterns", 0, err)
		return
	}

	h.logger.Info("POST /patterns - Pattern created: pattern_id=%d, name=%s", pattern.ID, pattern.Name)
	handlers.RespondJSON(w, http.StatusCreated, fromPattern(pattern))
}

// Get GET /api/v1/patterns/{patternId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	patternID, ok := h.patternID(w, r, "GET /patterns/{id}")
	if !ok {
		return
	}

	pattern, err := h.service.Get(r.Context(), patternID)
	if err != nil {
		h.respondError(w, "GET /patterns/{id}", patternID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromPattern(pattern))
}

// Delete DELETE /api/v1/patterns/{patternId}
// Удаляет шаблон вместе со всеми сгенерированными занятиями.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	patternID, ok := h.patternID(w, r, "DELETE /patterns/{id}")
	if !ok {
		return
	}

	result, err := h.service.Delete(r.Context(), patternID)
	if err != nil {
		h.respondError(w, "DELETE /patterns/{id}", patternID, err)
		return
	}

	h.logger.Info("DELETE /patterns/{id} - Pattern deleted: pattern_id=%d, deleted_classes=%d",
		patternID, result.DeletedClasses)
	handlers.RespondJSON(w, http.StatusOK, &DeletePatternResponse{
		PatternID:      result.PatternID,
		DeletedClasses: result.DeletedClasses,
	})
}

// Statistics GET /api/v1/patterns/{patternId}/statistics
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	patternID, ok := h.patternID(w, r, "GET /patterns/{id}/statistics")
	if !ok {
		return
	}

	stats, err := h.service.Statistics(r.Context(), patternID)
	if err != nil {
		h.respondError(w, "GET /patterns/{id}/statistics", patternID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromStatistics(stats))
}

func (h *Handler) patternID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	patternID, err := handlers.PathInt64(r, "patternId")
	if err != nil {
		h.logger.Warn("%s - Invalid pattern ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return 0, false
	}
	return patternID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, patternID int64, err error) {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		h.logger.Warn("%s - Pattern rejected: error=%v", route, vErr)
		handlers.RespondValidation(w, vErr)
		return
	}

	switch {
	case errors.Is(err, patterns.ErrPatternNotFound):
		h.logger.Warn("%s - Pattern not found: pattern_id=%d", route, patternID)
		handlers.RespondNotFound(w, msgPatternNotFound)

	default:
		h.logger.Error("%s - Failed: pattern_id=%d, error=%v", route, patternID, err)
		handlers.RespondInternalError(w)
	}
}

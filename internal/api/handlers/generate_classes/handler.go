package generate_classes

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	generateClasses "github.com/m04kA/DS-SchedulingService/internal/usecase/generate_classes"
)

const (
	msgInvalidPatternID = "некорректный ID шаблона"
	msgPatternNotFound  = "шаблон расписания не найден"
)

type Handler struct {
	useCase GenerateUseCase
	logger  Logger
}

func NewHandler(useCase GenerateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Generate POST /api/v1/patterns/{patternId}/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /patterns/{id}/generate", h.useCase.Generate)
}

// Regenerate POST /api/v1/patterns/{patternId}/regenerate
// Заменяет все занятия шаблона новым набором.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /patterns/{id}/regenerate", h.useCase.Regenerate)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	run func(ctx context.Context, patternID int64) (*generateClasses.Response, error),
) {
	patternID, err := handlers.PathInt64(r, "patternId")
	if err != nil {
		h.logger.Warn("%s - Invalid pattern ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	result, err := run(r.Context(), patternID)
	if err != nil {
		if vErr, ok := scheduling.AsValidationError(err); ok {
			h.logger.Warn("%s - Generation rejected: pattern_id=%d, error=%v", route, patternID, vErr)
			handlers.RespondValidation(w, vErr)
			return
		}

		switch {
		case errors.Is(err, generateClasses.ErrPatternNotFound):
			h.logger.Warn("%s - Pattern not found: pattern_id=%d", route, patternID)
			handlers.RespondNotFound(w, msgPatternNotFound)

		default:
			h.logger.Error("%s - Failed to generate classes: pattern_id=%d, error=%v", route, patternID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Classes generated: pattern_id=%d, created=%d, deleted=%d",
		route, patternID, len(result.Classes), result.DeletedClasses)
	handlers.RespondJSON(w, http.StatusCreated, fromUseCaseResponse(result))
}

package instructors

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/internal/service/instructors"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInstructorNotFound  = "инструктор не найден"
)

type Handler struct {
	service InstructorService
	logger  Logger
}

func NewHandler(service InstructorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/instructors/{instructorId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := h.instructorID(w, r, "GET /instructors/{id}")
	if !ok {
		return
	}

	instructor, err := h.service.Get(r.Context(), instructorID)
	if err != nil {
		h.respondError(w, "GET /instructors/{id}", instructorID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(instructor))
}

// UpdateLicenses PUT /api/v1/instructors/{instructorId}/licenses
func (h *Handler) UpdateLicenses(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := h.instructorID(w, r, "PUT /instructors/{id}/licenses")
	if !ok {
		return
	}

	var req UpdateLicensesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /instructors/{id}/licenses - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	instructor, err := h.service.UpdateLicenses(r.Context(), instructorID, req.LicenseCategories)
	if err != nil {
		h.respondError(w, "PUT /instructors/{id}/licenses", instructorID, err)
		return
	}

	h.logger.Info("PUT /instructors/{id}/licenses - Licenses updated: instructor_id=%d, licenses=%v",
		instructorID, instructor.Licenses)
	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(instructor))
}

// UpdateAvailability PUT /api/v1/instructors/{instructorId}/availability
func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := h.instructorID(w, r, "PUT /instructors/{id}/availability")
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /instructors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	instructor, err := h.service.UpdateAvailability(r.Context(), instructorID, req.toServiceRequest())
	if err != nil {
		h.respondError(w, "PUT /instructors/{id}/availability", instructorID, err)
		return
	}

	h.logger.Info("PUT /instructors/{id}/availability - Availability updated: instructor_id=%d, day=%s",
		instructorID, req.Day)
	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(instructor))
}

func (h *Handler) instructorID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	instructorID, err := handlers.PathInt64(r, "instructorId")
	if err != nil {
		h.logger.Warn("%s - Invalid instructor ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return 0, false
	}
	return instructorID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, instructorID int64, err error) {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		h.logger.Warn("%s - Rejected: instructor_id=%d, error=%v", route, instructorID, vErr)
		handlers.RespondValidation(w, vErr)
		return
	}

	switch {
	case errors.Is(err, instructors.ErrInstructorNotFound):
		h.logger.Warn("%s - Instructor not found: instructor_id=%d", route, instructorID)
		handlers.RespondNotFound(w, msgInstructorNotFound)

	default:
		h.logger.Error("%s - Failed: instructor_id=%d, error=%v", route, instructorID, err)
		handlers.RespondInternalError(w)
	}
}

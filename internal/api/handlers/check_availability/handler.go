package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	checkAvailability "github.com/m04kA/DS-SchedulingService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidDuration     = "некорректная длительность, ожидается число минут"
	msgInvalidInput        = "некорректные параметры проверки"
	msgBookingNotFound     = "бронирование не найдено"
	msgInstructorNotFound  = "инструктор не найден"
)

type Handler struct {
	useCase AvailabilityUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Check POST /api/v1/bookings/check
// Отклоненная проверка возвращается с кодом 200 и valid=false.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/check - Failed to parse request: %v", err)
		if vErr, ok := scheduling.AsValidationError(err); ok {
			handlers.RespondValidation(w, vErr)
		} else {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	result, err := h.useCase.Check(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /bookings/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkAvailability.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/check - Booking not found: kind=%s, booking_id=%v", req.Kind, req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("POST /bookings/check - Failed to check booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/check - Checked: kind=%s, valid=%t", req.Kind, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, fromCheckResponse(result))
}

// FreeSlots GET /api/v1/instructors/{instructorId}/free-slots?date=YYYY-MM-DD&duration=90&at=HH:MM
func (h *Handler) FreeSlots(w http.ResponseWriter, r *http.Request) {
	instructorID, err := handlers.PathInt64(r, "instructorId")
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/free-slots - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	query := r.URL.Query()
	date, err := handlers.ParseDate(scheduling.FieldDate, query.Get("date"), h.loc)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/free-slots - Invalid date: %v", err)
		vErr, _ := scheduling.AsValidationError(err)
		handlers.RespondValidation(w, vErr)
		return
	}

	var duration int
	if raw := query.Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /instructors/{id}/free-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.FreeSlots(r.Context(), &checkAvailability.FreeSlotsRequest{
		InstructorID:    instructorID,
		Date:            date,
		DurationMinutes: duration,
		At:              query.Get("at"),
	})
	if err != nil {
		if vErr, ok := scheduling.AsValidationError(err); ok {
			h.logger.Warn("GET /instructors/{id}/free-slots - Invalid time: %v", vErr)
			handlers.RespondValidation(w, vErr)
			return
		}

		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/free-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, checkAvailability.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id}/free-slots - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		default:
			h.logger.Error("GET /instructors/{id}/free-slots - Failed to get slots: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/free-slots - Slots retrieved: instructor_id=%d, slots=%d",
		instructorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, fromFreeSlotsResponse(result))
}

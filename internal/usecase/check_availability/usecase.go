package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// UseCase пробная проверка бронирований и подбор свободного времени инструктора.
// Работает без транзакции: результат носит справочный характер и ничего не записывает.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	validator    BookingValidator
	metrics      MetricsRecorder
	loc          *time.Location
	lookback     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	validator BookingValidator,
	metrics MetricsRecorder,
	loc *time.Location,
	lookback time.Duration,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	if lookback < domain.DefaultConflictLookback {
		lookback = domain.DefaultConflictLookback
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		validator:    validator,
		metrics:      metrics,
		loc:          loc,
		lookback:     lookback,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Check прогоняет конвейер проверок без сохранения
func (uc *UseCase) Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	uc.logger.Info("CheckAvailability.Check: kind=%s, booking=%v", req.Intent.Kind, req.BookingID)

	// 1. Загружаем существующее бронирование, если проверяется изменение
	var prior *domain.Booking
	if req.BookingID != nil {
		var err error
		prior, err = uc.loadPrior(ctx, req.Intent.Kind, *req.BookingID)
		if err != nil {
			return nil, err
		}
	} else if req.Intent.Kind != domain.KindLesson && req.Intent.Kind != domain.KindClass {
		uc.logger.Warn("CheckAvailability.Check: unknown kind %q", req.Intent.Kind)
		return nil, fmt.Errorf("%w: unknown booking kind %q", ErrInvalidInput, req.Intent.Kind)
	}

	// 2. Собираем контекст и прогоняем конвейер
	bc, err := uc.validator.Resolve(ctx, req.Intent, prior)
	if err == nil {
		err = uc.validator.Validate(ctx, bc)
	}

	kind := string(req.Intent.Kind)
	if prior != nil {
		kind = string(prior.Kind)
	}

	if err == nil {
		uc.metrics.IncBookingValidation(kind, "dry_run", "")
		return &CheckResponse{Valid: true, Errors: scheduling.FieldErrors{}}, nil
	}

	if vErr, ok := scheduling.AsValidationError(err); ok {
		uc.metrics.IncBookingValidation(kind, "dry_run", vErr.FirstCode())
		uc.logger.Info("CheckAvailability.Check: rejected: %v", vErr)
		return &CheckResponse{Valid: false, Errors: vErr.Fields, Detail: vErr.Detail}, nil
	}

	uc.metrics.IncBookingValidation(kind, "error", "")
	uc.logger.Error("CheckAvailability.Check: %v", err)
	return nil, fmt.Errorf("%w: Check: %v", ErrInternal, err)
}

func (uc *UseCase) loadPrior(ctx context.Context, kind domain.BookingKind, id int64) (*domain.Booking, error) {
	var (
		prior *domain.Booking
		err   error
	)
	switch kind {
	case domain.KindLesson:
		prior, err = uc.bookingRepo.GetLessonByID(ctx, id)
	case domain.KindClass:
		prior, err = uc.bookingRepo.GetClassByID(ctx, id)
	default:
		return nil, fmt.Errorf("%w: unknown booking kind %q", ErrInvalidInput, kind)
	}

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CheckAvailability.Check: %s id=%d not found", kind, id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckAvailability.Check: failed to get %s id=%d: %v", kind, id, err)
		return nil, fmt.Errorf("%w: failed to get %s: %v", ErrInternal, kind, err)
	}
	return prior, nil
}

// FreeSlots возвращает слоты рабочих часов инструктора на дату с отметкой,
// свободен ли инструктор на указанную длительность
func (uc *UseCase) FreeSlots(ctx context.Context, req *FreeSlotsRequest) (*FreeSlotsResponse, error) {
	uc.logger.Info("CheckAvailability.FreeSlots: instructor=%d, date=%s, duration=%d",
		req.InstructorID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultLessonDurationMinutes
	}
	if duration < domain.MinSessionDurationMinutes || duration > domain.MaxSessionDurationMinutes {
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Проверяем инструктора
	if _, err := uc.catalogRepo.GetInstructor(ctx, req.InstructorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CheckAvailability.FreeSlots: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("CheckAvailability.FreeSlots: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	// 3. Строим индекс рабочих часов
	entries, err := uc.catalogRepo.ListAvailability(ctx, req.InstructorID)
	if err != nil {
		uc.logger.Error("CheckAvailability.FreeSlots: failed to list availability: %v", err)
		return nil, fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
	}
	idx := scheduling.BuildAvailabilityIndex(entries, uc.loc, uc.logger)

	from, to := dayBounds(req.Date, uc.loc)
	resp := &FreeSlotsResponse{
		InstructorID: req.InstructorID,
		Date:         from,
		Day:          domain.WeekdayOf(from.Weekday()),
		Slots:        []Slot{},
	}

	// 4. Проверяем запрошенное время, если оно указано
	if req.At != "" {
		requested, err := uc.checkRequested(idx, req.InstructorID, resp.Day, req.At)
		if err != nil {
			return nil, err
		}
		resp.Requested = requested
	}

	starts := idx.Slots(req.InstructorID, from.Weekday())
	if len(starts) == 0 {
		uc.logger.Info("CheckAvailability.FreeSlots: instructor id=%d does not work on %s", req.InstructorID, resp.Day)
		return resp, nil
	}

	// 5. Получаем бронирования инструктора за день (с запасом назад на длительность занятий)
	bookings, err := uc.bookingRepo.FindActiveBookings(ctx, domain.BookingFilter{
		InstructorID: &req.InstructorID,
		Statuses:     domain.ActiveStatuses,
		From:         from.Add(-uc.lookback),
		To:           to.Add(time.Duration(duration) * time.Minute),
	})
	if err != nil {
		uc.logger.Error("CheckAvailability.FreeSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Отмечаем свободные слоты
	resp.Slots = buildSlots(starts, from, uc.loc, duration, uc.timeProvider.Now(), bookings)
	if resp.Requested != nil && resp.Requested.Working {
		window := domain.TimeWindow{Start: resp.Requested.StartTime.On(from, uc.loc), DurationMinutes: duration}
		resp.Requested.Free = countOverlappingBookings(window, bookings) == 0
	}

	uc.logger.Info("CheckAvailability.FreeSlots: %d slots for instructor=%d on %s",
		len(resp.Slots), req.InstructorID, from.Format(domain.DateFormat))
	return resp, nil
}

// checkRequested проверяет время "HH:MM" по рабочим часам инструктора.
// Некорректный формат возвращается как ошибка валидации.
func (uc *UseCase) checkRequested(idx *scheduling.AvailabilityIndex, instructorID int64, day domain.Weekday, at string) (*RequestedTime, error) {
	err := idx.CheckTimeOfDay(instructorID, day, at)
	if err == nil {
		ts, _ := types.NewTimeStringFromString(at)
		return &RequestedTime{StartTime: ts, Working: true}, nil
	}

	vErr, ok := scheduling.AsValidationError(err)
	if !ok {
		return nil, fmt.Errorf("%w: failed to check time: %v", ErrInternal, err)
	}
	if vErr.FirstCode() == string(scheduling.CodeInvalidTimeFormat) {
		uc.logger.Warn("CheckAvailability.FreeSlots: invalid time %q", at)
		return nil, vErr
	}

	ts, _ := types.NewTimeStringFromString(at)
	return &RequestedTime{StartTime: ts, Reason: scheduling.Code(vErr.FirstCode())}, nil
}

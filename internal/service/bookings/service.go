package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// Service сервис чтения расписания и отмены уроков
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	loc         *time.Location
	now         func() time.Time
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		loc:         loc,
		now:         time.Now,
		logger:      logger,
	}
}

// GetLesson получает урок по ID
func (s *Service) GetLesson(ctx context.Context, id int64) (*BookingResponse, error) {
	s.logger.Info("GetLesson: fetching lesson id=%d", id)

	lesson, err := s.bookingRepo.GetLessonByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetLesson: lesson id=%d not found", id)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("GetLesson: repository error for lesson id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetLesson - repository error: %v", ErrInternal, err)
	}

	return fromDomainBooking(lesson), nil
}

// GetClass получает групповое занятие с составом по ID
func (s *Service) GetClass(ctx context.Context, id int64) (*BookingResponse, error) {
	s.logger.Info("GetClass: fetching class id=%d", id)

	class, err := s.bookingRepo.GetClassByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetClass: class id=%d not found", id)
			return nil, ErrClassNotFound
		}
		s.logger.Error("GetClass: repository error for class id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetClass - repository error: %v", ErrInternal, err)
	}

	return fromDomainBooking(class), nil
}

// CancelLesson отменяет запланированный урок
func (s *Service) CancelLesson(ctx context.Context, id int64) (*BookingResponse, error) {
	s.logger.Info("CancelLesson: cancelling lesson id=%d", id)

	var lesson *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Получаем урок (с блокировкой строки)
		lesson, err = s.bookingRepo.GetLessonByID(txCtx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("%w: CancelLesson - get lesson: %v", ErrInternal, err)
		}

		// 2. Проверяем, можно ли отменить урок
		if !lesson.CanBeCanceled() {
			return ErrCannotCancel
		}

		// 3. Сохраняем новый статус
		lesson.Status = domain.StatusCanceled
		if err := s.bookingRepo.UpdateLesson(txCtx, lesson); err != nil {
			return fmt.Errorf("%w: CancelLesson - update lesson: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrLessonNotFound), errors.Is(err, ErrCannotCancel):
			s.logger.Warn("CancelLesson: lesson id=%d: %v", id, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("CancelLesson: lesson id=%d: %v", id, err)
			return nil, err
		default:
			s.logger.Error("CancelLesson: lesson id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: CancelLesson: %v", ErrInternal, err)
		}
	}

	s.logger.Info("CancelLesson: successfully cancelled lesson id=%d", id)
	return fromDomainBooking(lesson), nil
}

// StudentSchedule возвращает уроки и занятия студента за период
func (s *Service) StudentSchedule(ctx context.Context, studentID int64, req *ScheduleRequest) (*ScheduleResponse, error) {
	return s.schedule(ctx, "StudentSchedule", domain.BookingFilter{StudentID: &studentID}, req)
}

// InstructorSchedule возвращает уроки и занятия инструктора за период
func (s *Service) InstructorSchedule(ctx context.Context, instructorID int64, req *ScheduleRequest) (*ScheduleResponse, error) {
	return s.schedule(ctx, "InstructorSchedule", domain.BookingFilter{InstructorID: &instructorID}, req)
}

func (s *Service) schedule(ctx context.Context, op string, filter domain.BookingFilter, req *ScheduleRequest) (*ScheduleResponse, error) {
	from, to, err := s.period(req)
	if err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, err
	}
	s.logger.Info("%s: period %s to %s", op, from.Format(time.RFC3339), to.Format(time.RFC3339))

	filter.From = from
	filter.To = to
	filter.Statuses = domain.ActiveStatuses
	if req.IncludeCanceled {
		filter.Statuses = append([]domain.BookingStatus{domain.StatusCanceled}, domain.ActiveStatuses...)
	}

	bookings, err := s.bookingRepo.FindActiveBookings(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully fetched %d bookings", op, len(bookings))
	return fromDomainBookingList(from, to, bookings), nil
}

// period определяет границы периода. По умолчанию неделя с начала текущего дня.
func (s *Service) period(req *ScheduleRequest) (time.Time, time.Time, error) {
	var from time.Time
	if req.From != nil {
		from = *req.From
	} else {
		y, m, d := s.now().In(s.loc).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	}

	to := from.AddDate(0, 0, DefaultScheduleDays)
	if req.To != nil {
		to = *req.To
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}
	if to.Sub(from) > MaxScheduleDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period exceeds %d days", ErrInvalidTimeRange, MaxScheduleDays)
	}
	return from, to, nil
}

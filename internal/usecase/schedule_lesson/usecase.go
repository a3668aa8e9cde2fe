package schedule_lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
)

// UseCase создание и изменение индивидуальных уроков вождения
type UseCase struct {
	lessonRepo LessonRepository
	validator  BookingValidator
	txManager  TransactionManager
	metrics    MetricsRecorder
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	validator BookingValidator,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo: lessonRepo,
		validator:  validator,
		txManager:  txManager,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create проверяет и сохраняет новый урок.
// Поиск пересечений и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Create(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleLesson.Create: enrollment=%v, instructor=%v, time=%v",
		ptr.Deref(req.EnrollmentID, 0), ptr.Deref(req.InstructorID, 0), req.ScheduledTime)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Собираем контекст бронирования
		bc, err := uc.validator.Resolve(txCtx, req.toIntent(), nil)
		if err != nil {
			return err
		}

		// 2. Прогоняем конвейер проверок
		if err := uc.validator.Validate(txCtx, bc); err != nil {
			return err
		}

		// 3. Сохраняем урок
		created, err := uc.lessonRepo.CreateLesson(txCtx, bc.Booking())
		if err != nil {
			return fmt.Errorf("%w: Create - save lesson: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	uc.observe(err)
	if err != nil {
		return nil, uc.classify("Create", err)
	}

	uc.logger.Info("ScheduleLesson.Create: lesson id=%d scheduled at %s", result.ID, result.ScheduledTime)
	return fromDomain(result), nil
}

// Update изменяет урок: новые значения накладываются на текущие,
// и результат проверяется заново без учета самого урока
func (uc *UseCase) Update(ctx context.Context, lessonID int64, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleLesson.Update: lesson=%d", lessonID)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем текущий урок (с блокировкой строки)
		prior, err := uc.lessonRepo.GetLessonByID(txCtx, lessonID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("%w: Update - get lesson: %v", ErrInternal, err)
		}

		// 2. Собираем контекст с учетом текущих значений
		bc, err := uc.validator.Resolve(txCtx, req.toIntent(), prior)
		if err != nil {
			return err
		}

		// 3. Прогоняем конвейер проверок
		if err := uc.validator.Validate(txCtx, bc); err != nil {
			return err
		}

		// 4. Сохраняем изменения
		updated := bc.Booking()
		if err := uc.lessonRepo.UpdateLesson(txCtx, updated); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("%w: Update - save lesson: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if !errors.Is(err, ErrLessonNotFound) {
		uc.observe(err)
	}
	if err != nil {
		return nil, uc.classify("Update", err)
	}

	uc.logger.Info("ScheduleLesson.Update: lesson id=%d updated", lessonID)
	return fromDomain(result), nil
}

// classify отделяет отказ валидации от внутренних ошибок
func (uc *UseCase) classify(op string, err error) error {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		uc.logger.Warn("ScheduleLesson.%s: rejected: %v", op, vErr)
		return vErr
	}
	if errors.Is(err, ErrLessonNotFound) {
		uc.logger.Warn("ScheduleLesson.%s: lesson not found", op)
		return err
	}
	uc.logger.Error("ScheduleLesson.%s: %v", op, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) observe(err error) {
	kind := string(domain.KindLesson)
	switch vErr, ok := scheduling.AsValidationError(err); {
	case err == nil:
		uc.metrics.IncBookingValidation(kind, "accepted", "")
	case ok:
		uc.metrics.IncBookingValidation(kind, "rejected", vErr.FirstCode())
	default:
		uc.metrics.IncBookingValidation(kind, "error", "")
	}
}


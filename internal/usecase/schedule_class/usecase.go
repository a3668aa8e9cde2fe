package schedule_class

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
)

// UseCase создание и изменение групповых теоретических занятий
type UseCase struct {
	classRepo ClassRepository
	validator BookingValidator
	txManager TransactionManager
	metrics   MetricsRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	classRepo ClassRepository,
	validator BookingValidator,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		classRepo: classRepo,
		validator: validator,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create проверяет и сохраняет новое занятие вместе с составом группы
func (uc *UseCase) Create(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleClass.Create: course=%d, instructor=%d, resource=%d, time=%v",
		ptr.Deref(req.CourseID, 0), ptr.Deref(req.InstructorID, 0), ptr.Deref(req.ResourceID, 0), req.ScheduledTime)

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

		// 3. Сохраняем занятие и состав группы
		created, err := uc.classRepo.CreateClass(txCtx, bc.Booking())
		if err != nil {
			return fmt.Errorf("%w: Create - save class: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	uc.observe(err)
	if err != nil {
		return nil, uc.classify("Create", err)
	}

	uc.logger.Info("ScheduleClass.Create: class id=%d %q scheduled with %d students",
		result.ID, result.Name, len(result.StudentIDs))
	return fromDomain(result), nil
}

// Update изменяет занятие. Уже записанные студенты учитываются при проверке
// нового максимума, само занятие исключается из поиска пересечений.
func (uc *UseCase) Update(ctx context.Context, classID int64, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleClass.Update: class=%d", classID)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем текущее занятие (с блокировкой строки)
		prior, err := uc.classRepo.GetClassByID(txCtx, classID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrClassNotFound
			}
			return fmt.Errorf("%w: Update - get class: %v", ErrInternal, err)
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
		if err := uc.classRepo.UpdateClass(txCtx, updated); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrClassNotFound
			}
			return fmt.Errorf("%w: Update - save class: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if !errors.Is(err, ErrClassNotFound) {
		uc.observe(err)
	}
	if err != nil {
		return nil, uc.classify("Update", err)
	}

	uc.logger.Info("ScheduleClass.Update: class id=%d updated", classID)
	return fromDomain(result), nil
}

// classify отделяет отказ валидации от внутренних ошибок
func (uc *UseCase) classify(op string, err error) error {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		uc.logger.Warn("ScheduleClass.%s: rejected: %v", op, vErr)
		return vErr
	}
	if errors.Is(err, ErrClassNotFound) {
		uc.logger.Warn("ScheduleClass.%s: class not found", op)
		return err
	}
	uc.logger.Error("ScheduleClass.%s: %v", op, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) observe(err error) {
	kind := string(domain.KindClass)
	switch vErr, ok := scheduling.AsValidationError(err); {
	case err == nil:
		uc.metrics.IncBookingValidation(kind, "accepted", "")
	case ok:
		uc.metrics.IncBookingValidation(kind, "rejected", vErr.FirstCode())
	default:
		uc.metrics.IncBookingValidation(kind, "error", "")
	}
}

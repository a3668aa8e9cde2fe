package generate_classes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

// UseCase генерация групповых занятий по шаблону
type UseCase struct {
	patternRepo PatternRepository
	classRepo   ClassRepository
	catalogRepo CatalogRepository
	detector    *scheduling.ConflictDetector
	notifier    NotifierClient
	txManager   TransactionManager
	metrics     MetricsRecorder
	loc         *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	patternRepo PatternRepository,
	classRepo ClassRepository,
	catalogRepo CatalogRepository,
	detector *scheduling.ConflictDetector,
	notifier NotifierClient,
	txManager TransactionManager,
	metrics MetricsRecorder,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		patternRepo: patternRepo,
		classRepo:   classRepo,
		catalogRepo: catalogRepo,
		detector:    detector,
		notifier:    notifier,
		txManager:   txManager,
		metrics:     metrics,
		loc:         loc,
		logger:      logger,
	}
}

// Generate разворачивает шаблон в занятия, проверяет их на пересечения и сохраняет.
// Любое пересечение отменяет всю генерацию.
func (uc *UseCase) Generate(ctx context.Context, patternID int64) (*Response, error) {
	return uc.execute(ctx, patternID, ModeGenerate)
}

// Regenerate удаляет занятия шаблона и создает их заново в одной транзакции.
// Удаляемые занятия не считаются пересечениями для новых.
func (uc *UseCase) Regenerate(ctx context.Context, patternID int64) (*Response, error) {
	return uc.execute(ctx, patternID, ModeRegenerate)
}

func (uc *UseCase) execute(ctx context.Context, patternID int64, mode Mode) (*Response, error) {
	uc.logger.Info("GenerateClasses: pattern=%d, mode=%s", patternID, mode)

	var (
		result  *Response
		pattern *domain.Pattern
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Получаем шаблон (с блокировкой строки)
		pattern, err = uc.patternRepo.GetByID(txCtx, patternID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrPatternNotFound
			}
			return fmt.Errorf("%w: get pattern: %v", ErrInternal, err)
		}

		// 2. Разворачиваем шаблон в сессии
		spec, err := scheduling.SpecFromPattern(pattern, uc.loc)
		if err != nil {
			return err
		}
		expansion := scheduling.ExpandPattern(spec)
		if len(expansion.Sessions) == 0 {
			return scheduling.NewFieldError(scheduling.FieldRecurrenceDays, scheduling.CodeRequiredField,
				"pattern produces no sessions")
		}
		if expansion.Truncated {
			uc.logger.Warn("GenerateClasses: pattern=%d truncated after %d days: %d of %d sessions",
				patternID, expansion.Iterations, len(expansion.Sessions), spec.Count)
		}

		// 3. Проверяем все сессии на пересечения до любой записи
		var exclude *int64
		if mode == ModeRegenerate {
			exclude = &pattern.ID
		}
		if err := scheduling.ValidatePatternGeneration(txCtx, expansion.Sessions, uc.detector, exclude); err != nil {
			return err
		}

		result = &Response{
			PatternID:  pattern.ID,
			Mode:       mode,
			Truncated:  expansion.Truncated,
			Iterations: expansion.Iterations,
		}

		// 4. При перегенерации удаляем старые занятия
		if mode == ModeRegenerate {
			result.DeletedClasses, err = uc.classRepo.DeleteClassesByPattern(txCtx, pattern.ID)
			if err != nil {
				return fmt.Errorf("%w: delete classes: %v", ErrInternal, err)
			}
		}

		// 5. Записываем студентов шаблона в занятия
		classes := make([]*domain.Booking, 0, len(expansion.Sessions))
		for _, s := range expansion.Sessions {
			classes = append(classes, s.Booking())
		}

		eligible, err := uc.catalogRepo.EnrolledStudentIDs(txCtx, pattern.CourseID, pattern.StudentIDs)
		if err != nil {
			return fmt.Errorf("%w: enrolled students: %v", ErrInternal, err)
		}
		result.Enrollment = assignRoster(classes, pattern.StudentIDs, eligible)

		// 6. Сохраняем занятия и составы
		created, err := uc.classRepo.CreateClasses(txCtx, classes)
		if err != nil {
			return fmt.Errorf("%w: create classes: %v", ErrInternal, err)
		}

		result.Classes = make([]ClassSummary, 0, len(created))
		for _, c := range created {
			result.Classes = append(result.Classes, ClassSummary{
				ID:              c.ID,
				Name:            c.Name,
				ScheduledTime:   c.ScheduledTime,
				DurationMinutes: c.DurationMinutes,
				MaxStudents:     c.MaxStudents,
				StudentIDs:      c.StudentIDs,
			})
		}
		return nil
	})

	if err != nil {
		return nil, uc.fail(patternID, err)
	}

	uc.metrics.IncPatternGeneration("success")
	uc.metrics.AddGeneratedClasses(string(mode), len(result.Classes))
	uc.logger.Info("GenerateClasses: pattern=%d, mode=%s: created %d classes, deleted %d, enrolled %d, failed %d",
		patternID, mode, len(result.Classes), result.DeletedClasses, result.Enrollment.Enrolled, result.Enrollment.Failed)

	// 7. Уведомляем после фиксации транзакции, ошибка уведомления генерацию не отменяет
	if err := uc.notifier.NotifyClassesGenerated(ctx, result.toEvent(pattern.Name, pattern.InstructorID)); err != nil {
		uc.logger.Warn("GenerateClasses: notification for pattern=%d not delivered: %v", patternID, err)
	}

	return result, nil
}

func (uc *UseCase) fail(patternID int64, err error) error {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		uc.metrics.IncPatternGeneration("rejected")
		uc.logger.Warn("GenerateClasses: pattern=%d rejected: %v", patternID, vErr)
		return vErr
	}
	if errors.Is(err, ErrPatternNotFound) {
		uc.logger.Warn("GenerateClasses: pattern=%d not found", patternID)
		return err
	}

	uc.metrics.IncPatternGeneration("error")
	uc.logger.Error("GenerateClasses: pattern=%d: %v", patternID, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

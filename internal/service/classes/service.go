package classes

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

const metricsKind = "enrollment"

// Service управление составом групповых занятий
type Service struct {
	classRepo   ClassRepository
	catalogRepo CatalogRepository
	conflicts   ConflictChecker
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса занятий
func NewService(
	classRepo ClassRepository,
	catalogRepo CatalogRepository,
	conflicts ConflictChecker,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		classRepo:   classRepo,
		catalogRepo: catalogRepo,
		conflicts:   conflicts,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Enroll записывает студента на занятие.
// Студент должен быть записан на курс занятия и свободен в это время.
func (s *Service) Enroll(ctx context.Context, classID, studentID int64) (*ClassResponse, error) {
	s.logger.Info("Enroll: student=%d to class=%d", studentID, classID)

	var class *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Получаем занятие (с блокировкой строки)
		class, err = s.getClass(txCtx, classID)
		if err != nil {
			return err
		}

		// 2. Проверяем состояние занятия и состав
		if class.Status != domain.StatusScheduled {
			return ErrClassNotScheduled
		}
		if class.HasStudent(studentID) {
			return ErrAlreadyEnrolled
		}
		if class.IsFull() {
			return ErrClassFull
		}

		// 3. Проверяем запись студента на курс
		enrolled, err := s.catalogRepo.EnrolledStudentIDs(txCtx, class.CourseID, []int64{studentID})
		if err != nil {
			return fmt.Errorf("%w: Enroll - enrolled students: %v", ErrInternal, err)
		}
		if !slices.Contains(enrolled, studentID) {
			return scheduling.NewFieldError(scheduling.FieldStudentIDs, scheduling.CodeStudentNotEnrolledToCourse,
				fmt.Sprintf("student %d is not enrolled in course %d", studentID, class.CourseID))
		}

		// 4. Проверяем, что студент свободен во время занятия
		excl := scheduling.Exclusion{Ref: &domain.BookingRef{Kind: domain.KindClass, ID: class.ID}}
		if err := s.conflicts.CheckStudents(txCtx, scheduling.FieldStudentIDs, []int64{studentID}, class.Window(), excl); err != nil {
			return err
		}

		// 5. Добавляем студента в состав
		if err := s.classRepo.AddStudents(txCtx, class.ID, []int64{studentID}); err != nil {
			return fmt.Errorf("%w: Enroll - add student: %v", ErrInternal, err)
		}
		class.StudentIDs = append(class.StudentIDs, studentID)
		return nil
	})
	if err != nil {
		return nil, s.fail("Enroll", classID, err)
	}

	s.metrics.IncBookingValidation(metricsKind, "accepted", "")
	s.logger.Info("Enroll: student=%d enrolled to class=%d, %d spots left", studentID, classID, class.AvailableSpots())
	return fromDomainClass(class), nil
}

// Unenroll удаляет студента из состава занятия
func (s *Service) Unenroll(ctx context.Context, classID, studentID int64) (*ClassResponse, error) {
	s.logger.Info("Unenroll: student=%d from class=%d", studentID, classID)

	var class *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		class, err = s.getClass(txCtx, classID)
		if err != nil {
			return err
		}
		if !class.HasStudent(studentID) {
			return ErrNotEnrolled
		}

		if err := s.classRepo.RemoveStudent(txCtx, classID, studentID); err != nil {
			return fmt.Errorf("%w: Unenroll - remove student: %v", ErrInternal, err)
		}
		class.StudentIDs = slices.DeleteFunc(class.StudentIDs, func(id int64) bool { return id == studentID })
		return nil
	})
	if err != nil {
		return nil, s.fail("Unenroll", classID, err)
	}

	s.logger.Info("Unenroll: student=%d removed from class=%d", studentID, classID)
	return fromDomainClass(class), nil
}

// Cancel отменяет запланированное занятие. Состав сохраняется.
func (s *Service) Cancel(ctx context.Context, classID int64) (*ClassResponse, error) {
	s.logger.Info("Cancel: class=%d", classID)

	var class *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		class, err = s.getClass(txCtx, classID)
		if err != nil {
			return err
		}
		if !class.CanBeCanceled() {
			return ErrCannotCancel
		}

		if err := s.classRepo.UpdateClassStatus(txCtx, classID, domain.StatusCanceled); err != nil {
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}
		class.Status = domain.StatusCanceled
		return nil
	})
	if err != nil {
		return nil, s.fail("Cancel", classID, err)
	}

	s.logger.Info("Cancel: class=%d cancelled", classID)
	return fromDomainClass(class), nil
}

func (s *Service) getClass(ctx context.Context, classID int64) (*domain.Booking, error) {
	class, err := s.classRepo.GetClassByID(ctx, classID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("%w: get class: %v", ErrInternal, err)
	}
	return class, nil
}

// fail логирует ошибку операции и учитывает отказы записи в метриках
func (s *Service) fail(op string, classID int64, err error) error {
	if vErr, ok := scheduling.AsValidationError(err); ok {
		s.metrics.IncBookingValidation(metricsKind, "rejected", vErr.FirstCode())
		s.logger.Warn("%s: class=%d rejected: %v", op, classID, vErr)
		return vErr
	}

	for _, known := range []error{ErrClassNotFound, ErrAlreadyEnrolled, ErrNotEnrolled, ErrClassFull, ErrClassNotScheduled, ErrCannotCancel} {
		if errors.Is(err, known) {
			s.logger.Warn("%s: class=%d: %v", op, classID, err)
			return err
		}
	}

	s.logger.Error("%s: class=%d: %v", op, classID, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

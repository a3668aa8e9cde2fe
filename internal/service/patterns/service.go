package patterns

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// DefaultDurationMinutes длительность занятия шаблона по умолчанию
const DefaultDurationMinutes = domain.DefaultClassDurationMinutes

// Service сервис для работы с шаблонами расписания
type Service struct {
	patternRepo  PatternRepository
	classRepo    ClassRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(
	patternRepo PatternRepository,
	classRepo ClassRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		patternRepo:  patternRepo,
		classRepo:    classRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		timeProvider: RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// Create проверяет и сохраняет новый шаблон.
// Все ошибки полей собираются в один *scheduling.ValidationError.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*PatternResponse, error) {
	s.logger.Info("Create: creating pattern %q for course=%d, instructor=%d, resource=%d",
		req.Name, req.CourseID, req.InstructorID, req.ResourceID)

	// 1. Проверяем поля запроса и строим доменный шаблон
	pattern, errs := s.parseRequest(req)

	// 2. Проверяем ссылки на справочники
	refs, err := s.loadReferences(ctx, req, errs)
	if err != nil {
		s.logger.Error("Create: failed to load references: %v", err)
		return nil, fmt.Errorf("%w: Create - load references: %v", ErrInternal, err)
	}

	// 3. Проверяем тип курса, ресурса и категорию
	s.checkReferences(refs, pattern, errs)

	if err := errs.Err("pattern is invalid"); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем шаблон вместе со списком студентов
	created, err := s.patternRepo.Create(ctx, pattern)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created pattern id=%d", created.ID)
	return fromDomainPattern(created), nil
}

func (s *Service) parseRequest(req *CreateRequest) (*domain.Pattern, scheduling.FieldErrors) {
	errs := scheduling.FieldErrors{}
	p := &domain.Pattern{
		CourseID:           req.CourseID,
		InstructorID:       req.InstructorID,
		ResourceID:         req.ResourceID,
		NumLessons:         req.NumLessons,
		DefaultMaxStudents: req.DefaultMaxStudents,
	}

	p.Name = strings.TrimSpace(req.Name)
	switch {
	case p.Name == "":
		errs.Add(scheduling.FieldName, scheduling.CodeRequiredField)
	case len([]rune(p.Name)) > domain.MaxNameLength:
		errs.Add(scheduling.FieldName, scheduling.CodeNameTooLong)
	}

	if len(req.RecurrenceDays) == 0 {
		errs.Add(scheduling.FieldRecurrenceDays, scheduling.CodeRequiredField)
	}
	for _, raw := range req.RecurrenceDays {
		day, err := domain.ParseWeekday(raw)
		if err != nil {
			errs.Add(scheduling.FieldRecurrenceDays, scheduling.CodeInvalidWeekday)
			continue
		}
		if !slices.Contains(p.RecurrenceDays, day) {
			p.RecurrenceDays = append(p.RecurrenceDays, day)
		}
	}

	if len(req.Times) == 0 {
		errs.Add(scheduling.FieldTimes, scheduling.CodeRequiredField)
	}
	for _, raw := range req.Times {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			errs.Add(scheduling.FieldTimes, scheduling.CodeInvalidTimeFormat)
			continue
		}
		if !slices.Contains(p.Times, ts.String()) {
			p.Times = append(p.Times, ts.String())
		}
	}

	if strings.TrimSpace(req.StartDate) == "" {
		errs.Add(scheduling.FieldStartDate, scheduling.CodeRequiredField)
	} else if start, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.StartDate), s.loc); err != nil {
		errs.Add(scheduling.FieldStartDate, scheduling.CodeInvalidTimeFormat)
	} else {
		p.StartDate = start
		y, m, d := s.timeProvider.Now().In(s.loc).Date()
		if start.Before(time.Date(y, m, d, 0, 0, 0, 0, s.loc)) {
			errs.Add(scheduling.FieldStartDate, scheduling.CodeStartDateInPast)
		}
	}

	if req.NumLessons <= 0 || req.NumLessons > domain.MaxPatternSessions {
		errs.Add(scheduling.FieldNumLessons, scheduling.CodeInvalidNumLessons)
	}

	p.DefaultDurationMinutes = DefaultDurationMinutes
	if req.DefaultDurationMinutes != nil {
		p.DefaultDurationMinutes = *req.DefaultDurationMinutes
	}
	if p.DefaultDurationMinutes < domain.MinSessionDurationMinutes || p.DefaultDurationMinutes > domain.MaxSessionDurationMinutes {
		errs.Add(scheduling.FieldDefaultDuration, scheduling.CodeInvalidDuration)
	}

	if req.DefaultMaxStudents <= 0 {
		errs.Add(scheduling.FieldDefaultMax, scheduling.CodeInvalidCapacity)
	}

	for _, id := range req.StudentIDs {
		if !slices.Contains(p.StudentIDs, id) {
			p.StudentIDs = append(p.StudentIDs, id)
		}
	}

	return p, errs
}

type references struct {
	course     *domain.Course
	instructor *domain.Instructor
	resource   *domain.Resource
}

// loadReferences загружает курс, инструктора и ресурс.
// Отсутствующая запись отмечается как doesNotExist, остальные ошибки возвращаются.
func (s *Service) loadReferences(ctx context.Context, req *CreateRequest, errs scheduling.FieldErrors) (*references, error) {
	refs := &references{}
	var err error

	if req.CourseID <= 0 {
		errs.Add(scheduling.FieldCourseID, scheduling.CodeRequiredField)
	} else if refs.course, err = s.catalogRepo.GetCourse(ctx, req.CourseID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		errs.Add(scheduling.FieldCourseID, scheduling.CodeDoesNotExist)
	}
	if req.InstructorID <= 0 {
		errs.Add(scheduling.FieldInstructorID, scheduling.CodeRequiredField)
	} else if refs.instructor, err = s.catalogRepo.GetInstructor(ctx, req.InstructorID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		errs.Add(scheduling.FieldInstructorID, scheduling.CodeDoesNotExist)
	}
	if req.ResourceID <= 0 {
		errs.Add(scheduling.FieldResourceID, scheduling.CodeRequiredField)
	} else if refs.resource, err = s.catalogRepo.GetResource(ctx, req.ResourceID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		errs.Add(scheduling.FieldResourceID, scheduling.CodeDoesNotExist)
	}

	return refs, nil
}

func (s *Service) checkReferences(refs *references, p *domain.Pattern, errs scheduling.FieldErrors) {
	if refs.course != nil && refs.course.Type != domain.CourseTheory {
		errs.Add(scheduling.FieldCourseID, scheduling.CodeTheoryOnly)
	}

	if refs.resource != nil {
		if !refs.resource.IsClassroom() {
			errs.Add(scheduling.FieldResourceID, scheduling.CodeClassroomResourceRequired)
		}
		if !refs.resource.IsAvailable {
			errs.Add(scheduling.FieldResourceID, scheduling.CodeResourceUnavailable)
		}
		if p.DefaultMaxStudents > refs.resource.MaxCapacity {
			errs.Add(scheduling.FieldDefaultMax, scheduling.CodeCapacityExceeded)
		}
	}

	if err := scheduling.ValidateCategoryLicense(refs.course, refs.instructor, refs.resource); err != nil {
		if vErr, ok := scheduling.AsValidationError(err); ok {
			errs.Merge(vErr.Fields)
		}
	}
}

// Get получает шаблон по ID
func (s *Service) Get(ctx context.Context, id int64) (*PatternResponse, error) {
	s.logger.Info("Get: fetching pattern id=%d", id)

	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Get: pattern id=%d not found", id)
			return nil, ErrPatternNotFound
		}
		s.logger.Error("Get: repository error for pattern id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return fromDomainPattern(pattern), nil
}

// Delete удаляет шаблон вместе со всеми сгенерированными занятиями в одной транзакции
func (s *Service) Delete(ctx context.Context, id int64) (*DeleteResponse, error) {
	s.logger.Info("Delete: deleting pattern id=%d", id)

	result := &DeleteResponse{PatternID: id}
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем шаблон
		if _, err := s.patternRepo.GetByID(txCtx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrPatternNotFound
			}
			return fmt.Errorf("%w: Delete - get pattern: %v", ErrInternal, err)
		}

		// 2. Удаляем занятия шаблона
		deleted, err := s.classRepo.DeleteClassesByPattern(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - delete classes: %v", ErrInternal, err)
		}
		result.DeletedClasses = deleted

		// 3. Удаляем сам шаблон
		if err := s.patternRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrPatternNotFound
			}
			return fmt.Errorf("%w: Delete - delete pattern: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPatternNotFound) {
			s.logger.Warn("Delete: pattern id=%d not found", id)
		} else {
			s.logger.Error("Delete: failed to delete pattern id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Delete: successfully deleted pattern id=%d with %d classes", id, result.DeletedClasses)
	return result, nil
}

// Statistics считает статистику по занятиям шаблона
func (s *Service) Statistics(ctx context.Context, id int64) (*StatisticsResponse, error) {
	s.logger.Info("Statistics: fetching statistics for pattern id=%d", id)

	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Statistics: pattern id=%d not found", id)
			return nil, ErrPatternNotFound
		}
		s.logger.Error("Statistics: repository error for pattern id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Statistics - get pattern: %v", ErrInternal, err)
	}

	classes, err := s.classRepo.ListClassesByPattern(ctx, id)
	if err != nil {
		s.logger.Error("Statistics: failed to list classes of pattern id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Statistics - list classes: %v", ErrInternal, err)
	}

	stats := computeStatistics(pattern, classes)
	return fromDomainStatistics(pattern.Name, stats, nextClass(classes, s.timeProvider.Now())), nil
}

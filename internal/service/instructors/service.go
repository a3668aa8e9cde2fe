package instructors

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// Service сервис категорий и рабочих часов инструкторов
type Service struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса инструкторов
func NewService(catalogRepo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Get получает инструктора с категориями и рабочими часами
func (s *Service) Get(ctx context.Context, id int64) (*InstructorResponse, error) {
	s.logger.Info("Get: fetching instructor id=%d", id)

	instructor, err := s.catalogRepo.GetInstructor(ctx, id)
	if err != nil {
		return nil, s.lookupFailed("Get", id, err)
	}

	entries, err := s.catalogRepo.ListAvailability(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to list availability of instructor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - list availability: %v", ErrInternal, err)
	}

	return fromDomain(instructor, entries), nil
}

// UpdateLicenses заменяет категории инструктора.
// Строка вида "b, be" приводится к канонической форме "B,BE".
func (s *Service) UpdateLicenses(ctx context.Context, id int64, raw string) (*InstructorResponse, error) {
	s.logger.Info("UpdateLicenses: instructor id=%d, licenses=%q", id, raw)

	licenses, err := domain.ParseLicenseSet(raw)
	if err != nil {
		s.logger.Warn("UpdateLicenses: invalid licenses %q: %v", raw, err)
		return nil, scheduling.NewFieldError(scheduling.FieldLicenses, scheduling.CodeInvalidLicenseCategory, err.Error())
	}

	if err := s.catalogRepo.UpdateInstructorLicenses(ctx, id, licenses); err != nil {
		return nil, s.lookupFailed("UpdateLicenses", id, err)
	}

	s.logger.Info("UpdateLicenses: instructor id=%d now teaches %s", id, licenses)
	return s.Get(ctx, id)
}

// UpdateAvailability заменяет рабочие часы инструктора на один день недели
func (s *Service) UpdateAvailability(ctx context.Context, id int64, req *UpdateAvailabilityRequest) (*InstructorResponse, error) {
	s.logger.Info("UpdateAvailability: instructor id=%d, day=%s, hours=%v", id, req.Day, req.Hours)

	// 1. Проверяем день и часы
	errs := scheduling.FieldErrors{}
	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		errs.Add(scheduling.FieldDay, scheduling.CodeInvalidWeekday)
	}

	hours := make([]string, 0, len(req.Hours))
	for _, raw := range req.Hours {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			errs.Add(scheduling.FieldHours, scheduling.CodeInvalidTimeFormat)
			continue
		}
		if !slices.Contains(hours, ts.String()) {
			hours = append(hours, ts.String())
		}
	}
	slices.Sort(hours)

	if err := errs.Err("availability is invalid"); err != nil {
		s.logger.Warn("UpdateAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем инструктора и сохраняем часы
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.catalogRepo.GetInstructor(txCtx, id); err != nil {
			return err
		}
		return s.catalogRepo.UpsertAvailability(txCtx, domain.AvailabilityEntry{
			InstructorID: id,
			Day:          day,
			Hours:        hours,
		})
	})
	if err != nil {
		return nil, s.lookupFailed("UpdateAvailability", id, err)
	}

	s.logger.Info("UpdateAvailability: instructor id=%d works %d slots on %s", id, len(hours), day)
	return s.Get(ctx, id)
}

func (s *Service) lookupFailed(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("%s: instructor id=%d not found", op, id)
		return ErrInstructorNotFound
	}
	s.logger.Error("%s: repository error for instructor id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

package instructors

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// CatalogRepository интерфейс справочника инструкторов
type CatalogRepository interface {
	GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error)
	UpdateInstructorLicenses(ctx context.Context, id int64, licenses domain.LicenseSet) error
	ListAvailability(ctx context.Context, instructorID int64) ([]domain.AvailabilityEntry, error)
	UpsertAvailability(ctx context.Context, entry domain.AvailabilityEntry) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

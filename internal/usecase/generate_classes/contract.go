package generate_classes

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/integrations/notifier"
)

// PatternRepository интерфейс репозитория шаблонов
type PatternRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pattern, error)
}

// ClassRepository интерфейс репозитория групповых занятий
type ClassRepository interface {
	CreateClasses(ctx context.Context, classes []*domain.Booking) ([]*domain.Booking, error)
	DeleteClassesByPattern(ctx context.Context, patternID int64) (int64, error)
}

// CatalogRepository интерфейс справочника записей на курсы
type CatalogRepository interface {
	EnrolledStudentIDs(ctx context.Context, courseID int64, studentIDs []int64) ([]int64, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	NotifyClassesGenerated(ctx context.Context, event *notifier.ClassesGenerated) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для учета генераций
type MetricsRecorder interface {
	IncPatternGeneration(result string)
	AddGeneratedClasses(mode string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

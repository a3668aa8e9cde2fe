package patterns

import (
	"context"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// PatternRepository интерфейс репозитория шаблонов
type PatternRepository interface {
	Create(ctx context.Context, p *domain.Pattern) (*domain.Pattern, error)
	GetByID(ctx context.Context, id int64) (*domain.Pattern, error)
	Delete(ctx context.Context, id int64) error
}

// ClassRepository интерфейс репозитория сгенерированных занятий
type ClassRepository interface {
	ListClassesByPattern(ctx context.Context, patternID int64) ([]*domain.Booking, error)
	DeleteClassesByPattern(ctx context.Context, patternID int64) (int64, error)
}

// CatalogRepository интерфейс справочника курсов, инструкторов и ресурсов
type CatalogRepository interface {
	GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error)
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

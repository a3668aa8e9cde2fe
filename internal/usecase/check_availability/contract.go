package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

// BookingRepository интерфейс чтения уроков и занятий
type BookingRepository interface {
	FindActiveBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetLessonByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetClassByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// CatalogRepository интерфейс справочника инструкторов
type CatalogRepository interface {
	GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error)
	ListAvailability(ctx context.Context, instructorID int64) ([]domain.AvailabilityEntry, error)
}

// BookingValidator интерфейс конвейера проверки бронирований
type BookingValidator interface {
	Resolve(ctx context.Context, intent scheduling.BookingIntent, prior *domain.Booking) (*scheduling.BookingContext, error)
	Validate(ctx context.Context, bc *scheduling.BookingContext) error
}

// MetricsRecorder интерфейс для учета результатов валидации
type MetricsRecorder interface {
	IncBookingValidation(kind, result, code string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

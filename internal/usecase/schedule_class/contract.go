package schedule_class

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

// ClassRepository интерфейс репозитория групповых занятий
type ClassRepository interface {
	CreateClass(ctx context.Context, class *domain.Booking) (*domain.Booking, error)
	UpdateClass(ctx context.Context, class *domain.Booking) error
	GetClassByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// BookingValidator интерфейс конвейера проверки бронирований
type BookingValidator interface {
	Resolve(ctx context.Context, intent scheduling.BookingIntent, prior *domain.Booking) (*scheduling.BookingContext, error)
	Validate(ctx context.Context, bc *scheduling.BookingContext) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для учета результатов валидации
type MetricsRecorder interface {
	IncBookingValidation(kind, result, code string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

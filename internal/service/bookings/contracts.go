package bookings

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория уроков и занятий
type BookingRepository interface {
	GetLessonByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetClassByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateLesson(ctx context.Context, lesson *domain.Booking) error
	FindActiveBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
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

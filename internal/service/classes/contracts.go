package classes

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
)

// ClassRepository интерфейс репозитория групповых занятий
type ClassRepository interface {
	GetClassByID(ctx context.Context, id int64) (*domain.Booking, error)
	AddStudents(ctx context.Context, classID int64, studentIDs []int64) error
	RemoveStudent(ctx context.Context, classID, studentID int64) error
	UpdateClassStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// CatalogRepository интерфейс справочника записей на курсы
type CatalogRepository interface {
	EnrolledStudentIDs(ctx context.Context, courseID int64, studentIDs []int64) ([]int64, error)
}

// ConflictChecker проверка занятости студентов
type ConflictChecker interface {
	CheckStudents(ctx context.Context, field string, studentIDs []int64, window domain.TimeWindow, excl scheduling.Exclusion) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для учета проверок
type MetricsRecorder interface {
	IncBookingValidation(kind, result, code string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

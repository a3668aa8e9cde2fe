package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

var (
	// ErrLessonNotFound возвращается, когда урок не найден
	ErrLessonNotFound = fmt.Errorf("booking.repository: lesson %w", domain.ErrNotFound)

	// ErrClassNotFound возвращается, когда групповое занятие не найдено
	ErrClassNotFound = fmt.Errorf("booking.repository: class %w", domain.ErrNotFound)

	// ErrStudentNotInClass возвращается, когда студента нет в составе занятия
	ErrStudentNotInClass = errors.New("booking.repository: student is not in class roster")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

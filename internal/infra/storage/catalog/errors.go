package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

var (
	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = fmt.Errorf("catalog.repository: instructor %w", domain.ErrNotFound)

	// ErrResourceNotFound возвращается, когда ресурс (автомобиль или аудитория) не найден
	ErrResourceNotFound = fmt.Errorf("catalog.repository: resource %w", domain.ErrNotFound)

	// ErrCourseNotFound возвращается, когда курс не найден
	ErrCourseNotFound = fmt.Errorf("catalog.repository: course %w", domain.ErrNotFound)

	// ErrEnrollmentNotFound возвращается, когда запись на курс не найдена
	ErrEnrollmentNotFound = fmt.Errorf("catalog.repository: enrollment %w", domain.ErrNotFound)

	// ErrInvalidStoredValue возвращается, когда в БД лежит значение вне допустимого перечисления
	ErrInvalidStoredValue = errors.New("catalog.repository: invalid stored value")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)

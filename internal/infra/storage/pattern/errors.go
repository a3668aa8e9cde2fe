package pattern

import (
	"errors"
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

var (
	// ErrPatternNotFound возвращается, когда шаблон не найден
	ErrPatternNotFound = fmt.Errorf("pattern.repository: pattern %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pattern.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pattern.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pattern.repository: failed to scan row")
)

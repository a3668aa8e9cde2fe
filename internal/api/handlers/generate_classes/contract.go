package generate_classes

import (
	"context"

	generateClasses "github.com/m04kA/DS-SchedulingService/internal/usecase/generate_classes"
)

type GenerateUseCase interface {
	Generate(ctx context.Context, patternID int64) (*generateClasses.Response, error)
	Regenerate(ctx context.Context, patternID int64) (*generateClasses.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

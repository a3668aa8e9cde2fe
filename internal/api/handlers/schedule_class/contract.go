package schedule_class

import (
	"context"

	scheduleClass "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_class"
)

type ClassUseCase interface {
	Create(ctx context.Context, req *scheduleClass.Request) (*scheduleClass.Response, error)
	Update(ctx context.Context, classID int64, req *scheduleClass.Request) (*scheduleClass.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

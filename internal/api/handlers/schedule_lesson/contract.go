package schedule_lesson

import (
	"context"

	scheduleLesson "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_lesson"
)

type LessonUseCase interface {
	Create(ctx context.Context, req *scheduleLesson.Request) (*scheduleLesson.Response, error)
	Update(ctx context.Context, lessonID int64, req *scheduleLesson.Request) (*scheduleLesson.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package class_roster

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/classes"
)

type ClassService interface {
	Enroll(ctx context.Context, classID, studentID int64) (*classes.ClassResponse, error)
	Unenroll(ctx context.Context, classID, studentID int64) (*classes.ClassResponse, error)
	Cancel(ctx context.Context, classID int64) (*classes.ClassResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package instructors

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/instructors"
)

type InstructorService interface {
	Get(ctx context.Context, id int64) (*instructors.InstructorResponse, error)
	UpdateLicenses(ctx context.Context, id int64, raw string) (*instructors.InstructorResponse, error)
	UpdateAvailability(ctx context.Context, id int64, req *instructors.UpdateAvailabilityRequest) (*instructors.InstructorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

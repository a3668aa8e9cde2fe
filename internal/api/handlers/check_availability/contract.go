package check_availability

import (
	"context"

	checkAvailability "github.com/m04kA/DS-SchedulingService/internal/usecase/check_availability"
)

type AvailabilityUseCase interface {
	Check(ctx context.Context, req *checkAvailability.CheckRequest) (*checkAvailability.CheckResponse, error)
	FreeSlots(ctx context.Context, req *checkAvailability.FreeSlotsRequest) (*checkAvailability.FreeSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

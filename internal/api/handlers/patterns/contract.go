package patterns

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/patterns"
)

type PatternService interface {
	Create(ctx context.Context, req *patterns.CreateRequest) (*patterns.PatternResponse, error)
	Get(ctx context.Context, id int64) (*patterns.PatternResponse, error)
	Delete(ctx context.Context, id int64) (*patterns.DeleteResponse, error)
	Statistics(ctx context.Context, id int64) (*patterns.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

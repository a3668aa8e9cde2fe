package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDuration = errors.New("domain: invalid duration")

// TimeWindow is a half-open interval [Start, Start+Duration)
type TimeWindow struct {
	Start           time.Time
	DurationMinutes int
}

// NewTimeWindow validates the duration and builds a window
func NewTimeWindow(start time.Time, durationMinutes int) (TimeWindow, error) {
	if durationMinutes < MinSessionDurationMinutes || durationMinutes > MaxSessionDurationMinutes {
		return TimeWindow{}, fmt.Errorf("%w: %d minutes, must be in [%d, %d]",
			ErrInvalidDuration, durationMinutes, MinSessionDurationMinutes, MaxSessionDurationMinutes)
	}
	return TimeWindow{Start: start, DurationMinutes: durationMinutes}, nil
}

// End returns the exclusive end of the window
func (w TimeWindow) End() time.Time {
	return w.Start.Add(time.Duration(w.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the windows intersect. Touching endpoints do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End()) && other.Start.Before(w.End())
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s-%s", w.Start.Format(time.RFC3339), w.End().Format(time.RFC3339))
}

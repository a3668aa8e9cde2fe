package scheduling

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// PatternSpec is the recurrence definition to expand
type PatternSpec struct {
	PatternID    *int64
	Name         string
	CourseID     int64
	InstructorID int64
	ResourceID   int64

	Days      []domain.Weekday
	Times     []types.TimeString
	StartDate time.Time
	Count     int

	DurationMinutes int
	MaxStudents     int

	// Location is the business time zone the times are declared in; UTC when nil
	Location *time.Location
}

// SpecFromPattern builds an expansion spec from a stored pattern
func SpecFromPattern(p *domain.Pattern, loc *time.Location) (PatternSpec, error) {
	times := make([]types.TimeString, 0, len(p.Times))
	for _, raw := range p.Times {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return PatternSpec{}, violation(FieldTimes, CodeInvalidTimeFormat, "pattern time %q must be HH:MM", raw)
		}
		times = append(times, ts)
	}

	id := p.ID
	return PatternSpec{
		PatternID:       &id,
		Name:            p.Name,
		CourseID:        p.CourseID,
		InstructorID:    p.InstructorID,
		ResourceID:      p.ResourceID,
		Days:            p.RecurrenceDays,
		Times:           times,
		StartDate:       p.StartDate,
		Count:           p.NumLessons,
		DurationMinutes: p.DefaultDurationMinutes,
		MaxStudents:     p.DefaultMaxStudents,
		Location:        loc,
	}, nil
}

// Session is one concrete class produced by a pattern
type Session struct {
	PatternID       *int64
	Name            string
	CourseID        int64
	InstructorID    int64
	ResourceID      int64
	ScheduledTime   time.Time
	DurationMinutes int
	MaxStudents     int
}

// Window returns the occupied time window of the session
func (s Session) Window() domain.TimeWindow {
	return domain.TimeWindow{Start: s.ScheduledTime, DurationMinutes: s.DurationMinutes}
}

// Booking converts the session into a scheduled class ready to be stored
func (s Session) Booking() *domain.Booking {
	resourceID := s.ResourceID
	return &domain.Booking{
		Kind:            domain.KindClass,
		Name:            s.Name,
		CourseID:        s.CourseID,
		InstructorID:    s.InstructorID,
		ResourceID:      &resourceID,
		ScheduledTime:   s.ScheduledTime,
		DurationMinutes: s.DurationMinutes,
		MaxStudents:     s.MaxStudents,
		PatternID:       s.PatternID,
		Status:          domain.StatusScheduled,
	}
}

// Expansion is the result of ExpandPattern.
// Truncated is set when the iteration bound stopped the walk before Count sessions.
type Expansion struct {
	Sessions   []Session
	Truncated  bool
	Iterations int
}

// ExpandPattern walks day by day from the start date and emits one session per
// time entry, in order, on every matching weekday until Count sessions exist.
// The walk is bounded by Count × domain.PatternIterationFactor days.
func ExpandPattern(spec PatternSpec) Expansion {
	loc := spec.Location
	if loc == nil {
		loc = time.UTC
	}

	days := make([]time.Weekday, 0, len(spec.Days))
	for _, d := range spec.Days {
		days = append(days, d.Time())
	}

	var result Expansion
	if spec.Count <= 0 {
		return result
	}

	y, m, d := spec.StartDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	maxIterations := spec.Count * domain.PatternIterationFactor

	for result.Iterations < maxIterations && len(result.Sessions) < spec.Count {
		if slices.Contains(days, day.Weekday()) {
			for _, ts := range spec.Times {
				if len(result.Sessions) == spec.Count {
					break
				}
				start := ts.On(day, loc)
				result.Sessions = append(result.Sessions, Session{
					PatternID:       spec.PatternID,
					Name:            domain.ClassName(spec.Name, day.Format(domain.DateFormat)+" "+string(ts)),
					CourseID:        spec.CourseID,
					InstructorID:    spec.InstructorID,
					ResourceID:      spec.ResourceID,
					ScheduledTime:   start,
					DurationMinutes: spec.DurationMinutes,
					MaxStudents:     spec.MaxStudents,
				})
			}
		}
		day = day.AddDate(0, 0, 1)
		result.Iterations++
	}

	result.Truncated = len(result.Sessions) < spec.Count
	return result
}

// ValidatePatternGeneration dry-runs the sessions against persisted bookings of the
// instructor and the resource, and against each other. Classes of excludePatternID
// are ignored so a regeneration does not conflict with the classes it replaces.
func ValidatePatternGeneration(ctx context.Context, sessions []Session, detector *ConflictDetector, excludePatternID *int64) error {
	for i := range sessions {
		for j := i + 1; j < len(sessions); j++ {
			if sessions[i].Window().Overlaps(sessions[j].Window()) {
				return violation(FieldTimes, CodeInstructorConflict,
					"sessions %q and %q overlap", sessions[i].Name, sessions[j].Name)
			}
		}
	}

	excl := Exclusion{PatternID: excludePatternID}
	for _, s := range sessions {
		if err := detector.CheckInstructor(ctx, s.InstructorID, s.Window(), excl); err != nil {
			return annotateSession(err, s)
		}
		if err := detector.CheckResource(ctx, s.ResourceID, s.Window(), excl); err != nil {
			return annotateSession(err, s)
		}
	}
	return nil
}

func annotateSession(err error, s Session) error {
	if vErr, ok := AsValidationError(err); ok {
		return &ValidationError{
			Fields: vErr.Fields,
			Detail: fmt.Sprintf("%s: %s", s.Name, vErr.Detail),
		}
	}
	return err
}

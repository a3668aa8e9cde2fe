package generate_classes

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/integrations/notifier"
)

// Mode режим генерации
type Mode string

const (
	ModeGenerate   Mode = "generate"
	ModeRegenerate Mode = "regenerate"
)

// Response результат генерации занятий по шаблону
type Response struct {
	PatternID      int64
	Mode           Mode
	Classes        []ClassSummary
	DeletedClasses int64
	Truncated      bool // Ограничение на число дней обхода остановило генерацию раньше
	Iterations     int
	Enrollment     EnrollmentResult
}

// ClassSummary краткая информация о созданном занятии
type ClassSummary struct {
	ID              int64
	Name            string
	ScheduledTime   time.Time
	DurationMinutes int
	MaxStudents     int
	StudentIDs      []int64
}

// EnrollmentResult итог автоматической записи студентов шаблона
type EnrollmentResult struct {
	TotalStudents int
	Enrolled      int
	Failed        int
}

func (r *Response) toEvent(patternName string, instructorID int64) *notifier.ClassesGenerated {
	event := &notifier.ClassesGenerated{
		PatternID:      r.PatternID,
		PatternName:    patternName,
		Mode:           string(r.Mode),
		InstructorID:   instructorID,
		ClassIDs:       make([]int64, 0, len(r.Classes)),
		DeletedClasses: r.DeletedClasses,
		Truncated:      r.Truncated,
		Enrollment: notifier.EnrollmentResult{
			TotalStudents: r.Enrollment.TotalStudents,
			Enrolled:      r.Enrollment.Enrolled,
			Failed:        r.Enrollment.Failed,
		},
	}
	for _, c := range r.Classes {
		event.ClassIDs = append(event.ClassIDs, c.ID)
	}
	if n := len(r.Classes); n > 0 {
		first, last := r.Classes[0].ScheduledTime, r.Classes[n-1].ScheduledTime
		event.FirstClassAt = &first
		event.LastClassAt = &last
	}
	return event
}

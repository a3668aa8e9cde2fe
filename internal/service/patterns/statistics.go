package patterns

import (
	"math"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// computeStatistics считает статистику по занятиям шаблона.
// Места и вместимость считаются только по неотмененным занятиям.
func computeStatistics(p *domain.Pattern, classes []*domain.Booking) *domain.PatternStatistics {
	st := &domain.PatternStatistics{
		PatternID:    p.ID,
		TotalClasses: len(classes),
		RosterSize:   len(p.StudentIDs),
	}

	held := 0
	for _, c := range classes {
		switch c.Status {
		case domain.StatusScheduled:
			st.ScheduledClasses++
		case domain.StatusCompleted:
			st.CompletedClasses++
		case domain.StatusCanceled:
			st.CanceledClasses++
			continue
		}
		held++
		st.TotalEnrolledStudents += len(c.StudentIDs)
		st.TotalCapacity += c.MaxStudents
	}

	if held > 0 {
		st.AverageStudentsPerClass = round2(float64(st.TotalEnrolledStudents) / float64(held))
	}
	if st.TotalCapacity > 0 {
		st.CapacityUtilizationPercent = round2(float64(st.TotalEnrolledStudents) / float64(st.TotalCapacity) * 100)
	}
	return st
}

// nextClass возвращает время ближайшего запланированного занятия после now
func nextClass(classes []*domain.Booking, now time.Time) *time.Time {
	var next *time.Time
	for _, c := range classes {
		if c.Status != domain.StatusScheduled || !c.ScheduledTime.After(now) {
			continue
		}
		if next == nil || c.ScheduledTime.Before(*next) {
			t := c.ScheduledTime
			next = &t
		}
	}
	return next
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package patterns

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// CreateRequest запрос на создание шаблона расписания
type CreateRequest struct {
	Name                   string
	CourseID               int64
	InstructorID           int64
	ResourceID             int64
	RecurrenceDays         []string
	Times                  []string
	StartDate              string // YYYY-MM-DD
	NumLessons             int
	DefaultDurationMinutes *int
	DefaultMaxStudents     int
	StudentIDs             []int64
}

// PatternResponse шаблон расписания
type PatternResponse struct {
	ID                     int64
	Name                   string
	CourseID               int64
	InstructorID           int64
	ResourceID             int64
	RecurrenceDays         []string
	Times                  []string
	StartDate              string
	NumLessons             int
	DefaultDurationMinutes int
	DefaultMaxStudents     int
	StudentIDs             []int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DeleteResponse результат каскадного удаления шаблона
type DeleteResponse struct {
	PatternID      int64
	DeletedClasses int64
}

// StatisticsResponse статистика занятий шаблона
type StatisticsResponse struct {
	PatternID                  int64
	PatternName                string
	TotalClasses               int
	ScheduledClasses           int
	CompletedClasses           int
	CanceledClasses            int
	RosterSize                 int
	TotalEnrolledStudents      int
	TotalCapacity              int
	AverageStudentsPerClass    float64
	CapacityUtilizationPercent float64
	NextClassAt                *time.Time
}

func fromDomainPattern(p *domain.Pattern) *PatternResponse {
	days := make([]string, 0, len(p.RecurrenceDays))
	for _, d := range p.RecurrenceDays {
		days = append(days, string(d))
	}
	studentIDs := p.StudentIDs
	if studentIDs == nil {
		studentIDs = []int64{}
	}
	return &PatternResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		CourseID:               p.CourseID,
		InstructorID:           p.InstructorID,
		ResourceID:             p.ResourceID,
		RecurrenceDays:         days,
		Times:                  p.Times,
		StartDate:              p.StartDate.Format(domain.DateFormat),
		NumLessons:             p.NumLessons,
		DefaultDurationMinutes: p.DefaultDurationMinutes,
		DefaultMaxStudents:     p.DefaultMaxStudents,
		StudentIDs:             studentIDs,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func fromDomainStatistics(name string, st *domain.PatternStatistics, next *time.Time) *StatisticsResponse {
	return &StatisticsResponse{
		PatternID:                  st.PatternID,
		PatternName:                name,
		TotalClasses:               st.TotalClasses,
		ScheduledClasses:           st.ScheduledClasses,
		CompletedClasses:           st.CompletedClasses,
		CanceledClasses:            st.CanceledClasses,
		RosterSize:                 st.RosterSize,
		TotalEnrolledStudents:      st.TotalEnrolledStudents,
		TotalCapacity:              st.TotalCapacity,
		AverageStudentsPerClass:    st.AverageStudentsPerClass,
		CapacityUtilizationPercent: st.CapacityUtilizationPercent,
		NextClassAt:                next,
	}
}

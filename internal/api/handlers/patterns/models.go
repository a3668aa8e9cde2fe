package patterns

import (
	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/patterns"
)

// CreatePatternRequest HTTP модель создания шаблона расписания
type CreatePatternRequest struct {
	Name                   string   `json:"name"`
	CourseID               int64    `json:"course_id"`
	InstructorID           int64    `json:"instructor_id"`
	ResourceID             int64    `json:"resource_id"`
	RecurrenceDays         []string `json:"recurrence_days"` // ["MONDAY", "WEDNESDAY"]
	Times                  []string `json:"times"`           // ["10:00", "14:00"]
	StartDate              string   `json:"start_date"`      // "2025-03-03"
	NumLessons             int      `json:"num_lessons"`
	DefaultDurationMinutes *int     `json:"default_duration_minutes,omitempty"`
	DefaultMaxStudents     int      `json:"default_max_students"`
	StudentIDs             []int64  `json:"student_ids,omitempty"`
}

// PatternResponse HTTP модель шаблона
type PatternResponse struct {
	ID                     int64    `json:"id"`
	Name                   string   `json:"name"`
	CourseID               int64    `json:"course_id"`
	InstructorID           int64    `json:"instructor_id"`
	ResourceID             int64    `json:"resource_id"`
	RecurrenceDays         []string `json:"recurrence_days"`
	Times                  []string `json:"times"`
	StartDate              string   `json:"start_date"`
	NumLessons             int      `json:"num_lessons"`
	DefaultDurationMinutes int      `json:"default_duration_minutes"`
	DefaultMaxStudents     int      `json:"default_max_students"`
	StudentIDs             []int64  `json:"student_ids"`
	CreatedAt              string   `json:"created_at"`
	UpdatedAt              string   `json:"updated_at"`
}

// DeletePatternResponse HTTP модель результата удаления
type DeletePatternResponse struct {
	PatternID      int64 `json:"pattern_id"`
	DeletedClasses int64 `json:"deleted_classes"`
}

// StatisticsResponse HTTP модель статистики шаблона
type StatisticsResponse struct {
	PatternID                  int64   `json:"pattern_id"`
	PatternName                string  `json:"pattern_name"`
	TotalClasses               int     `json:"total_classes"`
	ScheduledClasses           int     `json:"scheduled_classes"`
	CompletedClasses           int     `json:"completed_classes"`
	CanceledClasses            int     `json:"canceled_classes"`
	RosterSize                 int     `json:"roster_size"`
	TotalEnrolledStudents      int     `json:"total_enrolled_students"`
	TotalCapacity              int     `json:"total_capacity"`
	AverageStudentsPerClass    float64 `json:"average_students_per_class"`
	CapacityUtilizationPercent float64 `json:"capacity_utilization_percent"`
	NextClassAt                *string `json:"next_class_at"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreatePatternRequest) ToServiceRequest() *patterns.CreateRequest {
	return &patterns.CreateRequest{
		Name:                   r.Name,
		CourseID:               r.CourseID,
		InstructorID:           r.InstructorID,
		ResourceID:             r.ResourceID,
		RecurrenceDays:         r.RecurrenceDays,
		Times:                  r.Times,
		StartDate:              r.StartDate,
		NumLessons:             r.NumLessons,
		DefaultDurationMinutes: r.DefaultDurationMinutes,
		DefaultMaxStudents:     r.DefaultMaxStudents,
		StudentIDs:             r.StudentIDs,
	}
}

func fromPattern(p *patterns.PatternResponse) *PatternResponse {
	return &PatternResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		CourseID:               p.CourseID,
		InstructorID:           p.InstructorID,
		ResourceID:             p.ResourceID,
		RecurrenceDays:         p.RecurrenceDays,
		Times:                  p.Times,
		StartDate:              p.StartDate,
		NumLessons:             p.NumLessons,
		DefaultDurationMinutes: p.DefaultDurationMinutes,
		DefaultMaxStudents:     p.DefaultMaxStudents,
		StudentIDs:             p.StudentIDs,
		CreatedAt:              handlers.FormatTime(p.CreatedAt),
		UpdatedAt:              handlers.FormatTime(p.UpdatedAt),
	}
}

func fromStatistics(st *patterns.StatisticsResponse) *StatisticsResponse {
	return &StatisticsResponse{
		PatternID:                  st.PatternID,
		PatternName:                st.PatternName,
		TotalClasses:               st.TotalClasses,
		ScheduledClasses:           st.ScheduledClasses,
		CompletedClasses:           st.CompletedClasses,
		CanceledClasses:            st.CanceledClasses,
		RosterSize:                 st.RosterSize,
		TotalEnrolledStudents:      st.TotalEnrolledStudents,
		TotalCapacity:              st.TotalCapacity,
		AverageStudentsPerClass:    st.AverageStudentsPerClass,
		CapacityUtilizationPercent: st.CapacityUtilizationPercent,
		NextClassAt:                handlers.FormatTimePtr(st.NextClassAt),
	}
}

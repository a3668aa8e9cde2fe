package generate_classes

import (
	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	generateClasses "github.com/m04kA/DS-SchedulingService/internal/usecase/generate_classes"
)

// GenerateResponse HTTP модель результата генерации
type GenerateResponse struct {
	PatternID      int64            `json:"pattern_id"`
	Mode           string           `json:"mode"`
	ClassesCreated int              `json:"classes_created"`
	DeletedClasses int64            `json:"deleted_classes"`
	Truncated      bool             `json:"truncated"`
	Classes        []ClassInfo      `json:"classes"`
	Enrollment     EnrollmentResult `json:"enrollment"`
}

// ClassInfo созданное занятие
type ClassInfo struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	ScheduledTime   string  `json:"scheduled_time"`
	DurationMinutes int     `json:"duration_minutes"`
	MaxStudents     int     `json:"max_students"`
	StudentIDs      []int64 `json:"student_ids"`
}

// EnrollmentResult итог автоматической записи
type EnrollmentResult struct {
	TotalStudents int `json:"total_students"`
	Enrolled      int `json:"enrolled"`
	Failed        int `json:"failed"`
}

func fromUseCaseResponse(resp *generateClasses.Response) *GenerateResponse {
	classes := make([]ClassInfo, 0, len(resp.Classes))
	for _, c := range resp.Classes {
		studentIDs := c.StudentIDs
		if studentIDs == nil {
			studentIDs = []int64{}
		}
		classes = append(classes, ClassInfo{
			ID:              c.ID,
			Name:            c.Name,
			ScheduledTime:   handlers.FormatTime(c.ScheduledTime),
			DurationMinutes: c.DurationMinutes,
			MaxStudents:     c.MaxStudents,
			StudentIDs:      studentIDs,
		})
	}
	return &GenerateResponse{
		PatternID:      resp.PatternID,
		Mode:           string(resp.Mode),
		ClassesCreated: len(classes),
		DeletedClasses: resp.DeletedClasses,
		Truncated:      resp.Truncated,
		Classes:        classes,
		Enrollment: EnrollmentResult{
			TotalStudents: resp.Enrollment.TotalStudents,
			Enrolled:      resp.Enrollment.Enrolled,
			Failed:        resp.Enrollment.Failed,
		},
	}
}

package class_roster

import (
	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/classes"
)

// StudentRequest тело запроса записи и отписки
type StudentRequest struct {
	StudentID int64 `json:"student_id"`
}

// RosterResponse занятие после изменения состава
type RosterResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	ScheduledTime  string  `json:"scheduled_time"`
	MaxStudents    int     `json:"max_students"`
	StudentIDs     []int64 `json:"student_ids"`
	AvailableSpots int     `json:"available_spots"`
	Status         string  `json:"status"`
}

func fromServiceResponse(c *classes.ClassResponse) *RosterResponse {
	return &RosterResponse{
		ID:             c.ID,
		Name:           c.Name,
		ScheduledTime:  handlers.FormatTime(c.ScheduledTime),
		MaxStudents:    c.MaxStudents,
		StudentIDs:     c.StudentIDs,
		AvailableSpots: c.AvailableSpots,
		Status:         c.Status,
	}
}

package classes

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// ClassResponse групповое занятие с составом
type ClassResponse struct {
	ID              int64
	Name            string
	CourseID        int64
	InstructorID    int64
	ResourceID      *int64
	PatternID       *int64
	ScheduledTime   time.Time
	DurationMinutes int
	MaxStudents     int
	StudentIDs      []int64
	AvailableSpots  int
	Status          string
}

func fromDomainClass(c *domain.Booking) *ClassResponse {
	studentIDs := c.StudentIDs
	if studentIDs == nil {
		studentIDs = []int64{}
	}
	return &ClassResponse{
		ID:              c.ID,
		Name:            c.Name,
		CourseID:        c.CourseID,
		InstructorID:    c.InstructorID,
		ResourceID:      c.ResourceID,
		PatternID:       c.PatternID,
		ScheduledTime:   c.ScheduledTime,
		DurationMinutes: c.DurationMinutes,
		MaxStudents:     c.MaxStudents,
		StudentIDs:      studentIDs,
		AvailableSpots:  c.AvailableSpots(),
		Status:          string(c.Status),
	}
}

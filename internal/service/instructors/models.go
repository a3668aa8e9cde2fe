package instructors

import (
	"slices"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// UpdateAvailabilityRequest рабочие часы на один день недели.
// Пустой список часов делает день нерабочим.
type UpdateAvailabilityRequest struct {
	Day   string
	Hours []string
}

// InstructorResponse инструктор с категориями и рабочими часами
type InstructorResponse struct {
	ID           int64
	FirstName    string
	LastName     string
	FullName     string
	Licenses     []string
	Availability []AvailabilityDay
}

// AvailabilityDay рабочие часы в один день недели
type AvailabilityDay struct {
	Day   string
	Hours []string
}

func fromDomain(i *domain.Instructor, entries []domain.AvailabilityEntry) *InstructorResponse {
	licenses := make([]string, 0, len(i.Licenses))
	for _, c := range i.Licenses {
		licenses = append(licenses, string(c))
	}

	days := make([]AvailabilityDay, 0, len(entries))
	for _, e := range entries {
		days = append(days, AvailabilityDay{Day: string(e.Day), Hours: e.Hours})
	}
	// Понедельник первым
	slices.SortFunc(days, func(a, b AvailabilityDay) int {
		return weekdayOrder(a.Day) - weekdayOrder(b.Day)
	})

	return &InstructorResponse{
		ID:           i.ID,
		FirstName:    i.FirstName,
		LastName:     i.LastName,
		FullName:     i.FullName(),
		Licenses:     licenses,
		Availability: days,
	}
}

func weekdayOrder(day string) int {
	return (int(domain.Weekday(day).Time()) + 6) % 7
}

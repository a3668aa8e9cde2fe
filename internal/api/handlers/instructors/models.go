package instructors

import "github.com/m04kA/DS-SchedulingService/internal/service/instructors"

// UpdateLicensesRequest категории через запятую, например "B,BE"
type UpdateLicensesRequest struct {
	LicenseCategories string `json:"license_categories"`
}

// UpdateAvailabilityRequest рабочие часы на день недели
type UpdateAvailabilityRequest struct {
	Day   string   `json:"day"`   // "MONDAY"
	Hours []string `json:"hours"` // ["09:00", "10:00"], пустой список делает день нерабочим
}

// InstructorResponse HTTP модель инструктора
type InstructorResponse struct {
	ID           int64             `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	FullName     string            `json:"full_name"`
	Licenses     []string          `json:"license_categories"`
	Availability []AvailabilityDay `json:"availability"`
}

// AvailabilityDay рабочие часы в один день
type AvailabilityDay struct {
	Day   string   `json:"day"`
	Hours []string `json:"hours"`
}

func (r *UpdateAvailabilityRequest) toServiceRequest() *instructors.UpdateAvailabilityRequest {
	return &instructors.UpdateAvailabilityRequest{Day: r.Day, Hours: r.Hours}
}

func fromServiceResponse(i *instructors.InstructorResponse) *InstructorResponse {
	days := make([]AvailabilityDay, 0, len(i.Availability))
	for _, d := range i.Availability {
		hours := d.Hours
		if hours == nil {
			hours = []string{}
		}
		days = append(days, AvailabilityDay{Day: d.Day, Hours: hours})
	}
	return &InstructorResponse{
		ID:           i.ID,
		FirstName:    i.FirstName,
		LastName:     i.LastName,
		FullName:     i.FullName,
		Licenses:     i.Licenses,
		Availability: days,
	}
}

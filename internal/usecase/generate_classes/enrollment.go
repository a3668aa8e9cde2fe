package generate_classes

import (
	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// assignRoster записывает студентов шаблона в каждое занятие.
// В занятие попадают только студенты с действующей записью на курс,
// не больше max_students на занятие, в порядке списка шаблона.
func assignRoster(classes []*domain.Booking, roster, eligible []int64) EnrollmentResult {
	result := EnrollmentResult{TotalStudents: len(roster)}
	if len(roster) == 0 {
		return result
	}

	allowed := make(map[int64]struct{}, len(eligible))
	for _, id := range eligible {
		allowed[id] = struct{}{}
	}

	ordered := make([]int64, 0, len(roster))
	for _, id := range roster {
		if _, ok := allowed[id]; ok {
			ordered = append(ordered, id)
		}
	}

	for _, class := range classes {
		taken := ordered
		if len(taken) > class.MaxStudents {
			taken = taken[:class.MaxStudents]
		}
		class.StudentIDs = append([]int64(nil), taken...)

		result.Enrolled += len(taken)
		result.Failed += len(roster) - len(taken)
	}

	return result
}

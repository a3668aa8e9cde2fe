package scheduling

import "github.com/m04kA/DS-SchedulingService/internal/domain"

// ValidateMaxStudents checks a declared class maximum against the resource.
// On edits the maximum may not drop below the committed roster.
func ValidateMaxStudents(resource *domain.Resource, maxStudents, committed int, isEdit bool) error {
	if maxStudents <= 0 {
		return violation(FieldMaxStudents, CodeInvalidCapacity, "max students must be positive, got %d", maxStudents)
	}
	if resource != nil && maxStudents > resource.MaxCapacity {
		return violation(FieldMaxStudents, CodeCapacityExceeded,
			"max students %d exceeds resource capacity %d", maxStudents, resource.MaxCapacity)
	}
	if isEdit && maxStudents < committed {
		return violation(FieldMaxStudents, CodeCapacityBelowEnrolled,
			"max students %d is below %d enrolled students", maxStudents, committed)
	}
	return nil
}

// ValidateRoster checks an explicit roster against the declared maximum and the resource
func ValidateRoster(resource *domain.Resource, maxStudents, rosterSize int) error {
	if rosterSize > maxStudents {
		return violation(FieldStudentIDs, CodeCapacityBelowSelected,
			"%d selected students exceed max students %d", rosterSize, maxStudents)
	}
	if resource != nil && rosterSize > resource.MaxCapacity {
		return violation(FieldStudentIDs, CodeSelectedStudentsExceedCapacity,
			"%d selected students exceed resource capacity %d", rosterSize, resource.MaxCapacity)
	}
	return nil
}

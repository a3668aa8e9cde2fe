package scheduling

import "github.com/m04kA/DS-SchedulingService/internal/domain"

// ValidateCategoryLicense cross-checks course category against the resource and the instructor licenses
func ValidateCategoryLicense(course *domain.Course, instructor *domain.Instructor, resource *domain.Resource) error {
	if course == nil {
		return nil
	}
	if resource != nil && resource.Category != course.Category {
		return violation(FieldResourceID, CodeCategoryMismatch,
			"resource category %s differs from course category %s", resource.Category, course.Category)
	}
	if instructor != nil && !instructor.Licenses.Contains(course.Category) {
		return violation(FieldInstructorID, CodeInstructorLicenseMismatch,
			"instructor licenses %s do not include %s", instructor.Licenses, course.Category)
	}
	return nil
}

package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAccessor = errors.New("scheduling: booking accessor failed")
	ErrCatalog  = errors.New("scheduling: catalog lookup failed")
)

// Code is a stable violation code a UI can localize
type Code string

const (
	CodeRequiredField                  Code = "requiredField"
	CodeInstructorConflict             Code = "instructorConflict"
	CodeStudentConflict                Code = "studentConflict"
	CodeResourceConflict               Code = "resourceConflict"
	CodeOutsideAvailability            Code = "outsideAvailability"
	CodeInstructorNotWorking           Code = "instructorNotWorking"
	CodeInvalidTimeFormat              Code = "invalidTimeFormat"
	CodeCategoryMismatch               Code = "categoryMismatch"
	CodeInstructorLicenseMismatch      Code = "instructorLicenseMismatch"
	CodeCapacityExceeded               Code = "capacityExceeded"
	CodeCapacityBelowEnrolled          Code = "capacityBelowEnrolled"
	CodeCapacityBelowSelected          Code = "capacityBelowSelected"
	CodeSelectedStudentsExceedCapacity Code = "selectedStudentsExceedCapacity"
	CodePracticeEnrollmentRequired     Code = "practiceEnrollmentRequired"
	CodeVehicleResourceRequired        Code = "vehicleResourceRequired"
	CodeTheoryOnly                     Code = "theoryOnly"
	CodeClassroomResourceRequired      Code = "classroomResourceRequired"
	CodeResourceUnavailable            Code = "resourceUnavailable"
	CodeStudentNotEnrolledToCourse     Code = "studentNotEnrolledToCourse"

	CodeInvalidCapacity        Code = "invalidCapacity"
	CodeInvalidDuration        Code = "invalidDuration"
	CodeDoesNotExist           Code = "doesNotExist"
	CodeInvalidWeekday         Code = "invalidWeekday"
	CodeInvalidLicenseCategory Code = "invalidLicenseCategory"
	CodeStartDateInPast        Code = "startDateInPast"
	CodeInvalidNumLessons      Code = "invalidNumLessons"
	CodeNameTooLong            Code = "nameTooLong"
	CodeInvalidStatus          Code = "invalidStatus"
)

// Field names used as violation keys
const (
	FieldInstructorID    = "instructor_id"
	FieldResourceID      = "resource_id"
	FieldCourseID        = "course_id"
	FieldEnrollmentID    = "enrollment_id"
	FieldStudentIDs      = "student_ids"
	FieldScheduledTime   = "scheduled_time"
	FieldDuration        = "duration_minutes"
	FieldMaxStudents     = "max_students"
	FieldName            = "name"
	FieldRecurrenceDays  = "recurrence_days"
	FieldTimes           = "times"
	FieldStartDate       = "start_date"
	FieldNumLessons      = "num_lessons"
	FieldDefaultDuration = "default_duration_minutes"
	FieldDefaultMax      = "default_max_students"
	FieldLicenses        = "license_categories"
	FieldDay             = "day"
	FieldHours           = "hours"
	FieldStatus          = "status"
	FieldDate            = "date"
)

// FieldErrors maps a field name to its ordered violation codes
type FieldErrors map[string][]string

// Add appends a code to the field, skipping duplicates
func (f FieldErrors) Add(field string, code Code) {
	for _, existing := range f[field] {
		if existing == string(code) {
			return
		}
	}
	f[field] = append(f[field], string(code))
}

// Merge appends every code of other
func (f FieldErrors) Merge(other FieldErrors) {
	for field, codes := range other {
		for _, code := range codes {
			f.Add(field, Code(code))
		}
	}
}

// Err returns nil when no field failed
func (f FieldErrors) Err(detail string) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f, Detail: detail}
}

// ValidationError is a rejected booking: data returned to the caller, not a fault
type ValidationError struct {
	Fields FieldErrors
	Detail string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ",")))
	}

	msg := "validation failed: " + strings.Join(parts, "; ")
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// FirstCode returns a representative code, used as a metrics label
func (e *ValidationError) FirstCode() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(e.Fields[k]) > 0 {
			return e.Fields[k][0]
		}
	}
	return ""
}

// HasCode reports whether any field carries the code
func (e *ValidationError) HasCode(code Code) bool {
	for _, codes := range e.Fields {
		for _, c := range codes {
			if c == string(code) {
				return true
			}
		}
	}
	return false
}

func violation(field string, code Code, detailFormat string, args ...interface{}) *ValidationError {
	fields := FieldErrors{}
	fields.Add(field, code)
	return &ValidationError{Fields: fields, Detail: fmt.Sprintf(detailFormat, args...)}
}

// AsValidationError unwraps a *ValidationError from err
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// NewFieldError builds a single-field violation
func NewFieldError(field string, code Code, detail string) *ValidationError {
	return violation(field, code, "%s", detail)
}

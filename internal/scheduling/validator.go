package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// BookingIntent is what a caller asks for. Nil fields keep the prior value on edits.
type BookingIntent struct {
	Kind            domain.BookingKind
	InstructorID    *int64
	ResourceID      *int64
	ClearResource   bool
	CourseID        *int64
	EnrollmentID    *int64
	ScheduledTime   *time.Time
	DurationMinutes *int
	MaxStudents     *int
	StudentIDs      *[]int64
	Status          *domain.BookingStatus
	Name            *string
	Notes           *string
}

// BookingContext is the effective booking after merging an intent with the prior record
// and resolving every reference
type BookingContext struct {
	Kind  domain.BookingKind
	Prior *domain.Booking

	Instructor *domain.Instructor
	Resource   *domain.Resource
	Course     *domain.Course
	Enrollment *domain.Enrollment

	Start           *time.Time
	DurationMinutes int
	MaxStudents     *int
	StudentIDs      []int64
	Status          domain.BookingStatus
	Name            string
	Notes           *string
}

// Window returns the proposed time window. Start must be set.
func (c *BookingContext) Window() domain.TimeWindow {
	return domain.TimeWindow{Start: *c.Start, DurationMinutes: c.DurationMinutes}
}

// Exclusion returns the self-exclusion for edits
func (c *BookingContext) Exclusion() Exclusion {
	if c.Prior == nil {
		return Exclusion{}
	}
	ref := c.Prior.Ref()
	return Exclusion{Ref: &ref}
}

// Participants returns the students occupying the booking
func (c *BookingContext) Participants() []int64 {
	if c.Kind == domain.KindLesson {
		if c.Enrollment == nil {
			return nil
		}
		return []int64{c.Enrollment.StudentID}
	}
	return c.StudentIDs
}

// Booking materializes the context into a storable booking
func (c *BookingContext) Booking() *domain.Booking {
	b := &domain.Booking{Kind: c.Kind}
	if c.Prior != nil {
		copied := *c.Prior
		b = &copied
	}

	b.InstructorID = c.Instructor.ID
	b.ScheduledTime = *c.Start
	b.DurationMinutes = c.DurationMinutes
	b.Status = c.Status
	b.ResourceID = nil
	if c.Resource != nil {
		id := c.Resource.ID
		b.ResourceID = &id
	}
	if c.Course != nil {
		b.CourseID = c.Course.ID
	}

	switch c.Kind {
	case domain.KindLesson:
		enrollmentID, studentID := c.Enrollment.ID, c.Enrollment.StudentID
		b.EnrollmentID = &enrollmentID
		b.StudentID = &studentID
		b.Notes = c.Notes
	case domain.KindClass:
		b.Name = c.Name
		b.MaxStudents = *c.MaxStudents
		b.StudentIDs = c.StudentIDs
	}
	return b
}

// BookingValidator runs the validation pipeline
// REQUIRED_FIELDS → TYPE_RULES → CONFLICTS → AVAILABILITY → CAPACITY → CATEGORY_LICENSE.
// Required fields are reported together; every later step stops at its first violation.
type BookingValidator struct {
	catalog  Catalog
	detector *ConflictDetector
	loc      *time.Location
	logger   Logger
}

// NewBookingValidator creates a validator working in the business time zone loc
func NewBookingValidator(catalog Catalog, detector *ConflictDetector, loc *time.Location, logger Logger) *BookingValidator {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingValidator{
		catalog:  catalog,
		detector: detector,
		loc:      loc,
		logger:   logger,
	}
}

// Detector exposes the conflict detector for pattern dry runs
func (v *BookingValidator) Detector() *ConflictDetector {
	return v.detector
}

// Location returns the business time zone
func (v *BookingValidator) Location() *time.Location {
	return v.loc
}

// Resolve merges the intent with the prior record (nil on create) and loads referenced
// records. A reference to a missing record is a doesNotExist violation.
func (v *BookingValidator) Resolve(ctx context.Context, intent BookingIntent, prior *domain.Booking) (*BookingContext, error) {
	kind := intent.Kind
	if prior != nil {
		kind = prior.Kind
	}

	bc := &BookingContext{
		Kind:   kind,
		Prior:  prior,
		Status: domain.StatusScheduled,
	}

	var (
		instructorID, resourceID, courseID, enrollmentID *int64
		duration                                         int
	)

	if prior != nil {
		instructorID = &prior.InstructorID
		resourceID = prior.ResourceID
		if prior.CourseID != 0 {
			courseID = &prior.CourseID
		}
		enrollmentID = prior.EnrollmentID
		start := prior.ScheduledTime
		bc.Start = &start
		duration = prior.DurationMinutes
		bc.Status = prior.Status
		bc.Name = prior.Name
		bc.Notes = prior.Notes
		if kind == domain.KindClass {
			maxStudents := prior.MaxStudents
			bc.MaxStudents = &maxStudents
			bc.StudentIDs = append([]int64(nil), prior.StudentIDs...)
		}
	}

	if intent.InstructorID != nil {
		instructorID = intent.InstructorID
	}
	if intent.ResourceID != nil {
		resourceID = intent.ResourceID
	}
	if intent.ClearResource {
		resourceID = nil
	}
	if intent.CourseID != nil {
		courseID = intent.CourseID
	}
	if intent.EnrollmentID != nil {
		enrollmentID = intent.EnrollmentID
	}
	if intent.ScheduledTime != nil {
		start := *intent.ScheduledTime
		bc.Start = &start
	}
	if intent.DurationMinutes != nil {
		duration = *intent.DurationMinutes
	}
	if intent.MaxStudents != nil {
		maxStudents := *intent.MaxStudents
		bc.MaxStudents = &maxStudents
	}
	if intent.StudentIDs != nil {
		bc.StudentIDs = dedupe(*intent.StudentIDs)
	}
	if intent.Status != nil {
		bc.Status = *intent.Status
	}
	if intent.Name != nil {
		bc.Name = *intent.Name
	}
	if intent.Notes != nil {
		bc.Notes = intent.Notes
	}

	if duration == 0 {
		duration = defaultDuration(kind)
	}
	bc.DurationMinutes = duration

	missing := FieldErrors{}
	var err error

	if instructorID != nil {
		if bc.Instructor, err = v.catalog.GetInstructor(ctx, *instructorID); err != nil {
			if err = lookupFailed(err, missing, FieldInstructorID); err != nil {
				return nil, err
			}
		}
	}
	if resourceID != nil {
		if bc.Resource, err = v.catalog.GetResource(ctx, *resourceID); err != nil {
			if err = lookupFailed(err, missing, FieldResourceID); err != nil {
				return nil, err
			}
		}
	}
	if enrollmentID != nil {
		if bc.Enrollment, err = v.catalog.GetEnrollment(ctx, *enrollmentID); err != nil {
			if err = lookupFailed(err, missing, FieldEnrollmentID); err != nil {
				return nil, err
			}
		}
		// Урок относится к курсу записи студента
		if bc.Enrollment != nil && kind == domain.KindLesson {
			courseID = &bc.Enrollment.CourseID
		}
	}
	if courseID != nil {
		if bc.Course, err = v.catalog.GetCourse(ctx, *courseID); err != nil {
			if err = lookupFailed(err, missing, FieldCourseID); err != nil {
				return nil, err
			}
		}
	}

	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing, Detail: "referenced records do not exist"}
	}

	if bc.Kind == domain.KindClass && bc.Name == "" && bc.Course != nil && bc.Start != nil {
		bc.Name = domain.ClassName(bc.Course.Name, bc.Start.In(v.loc).Format(domain.DateFormat+" "+domain.TimeFormat))
	}

	return bc, nil
}

func lookupFailed(err error, missing FieldErrors, field string) error {
	if errors.Is(err, domain.ErrNotFound) {
		missing.Add(field, CodeDoesNotExist)
		return nil
	}
	return fmt.Errorf("%w: Resolve - %s: %v", ErrCatalog, field, err)
}

func defaultDuration(kind domain.BookingKind) int {
	if kind == domain.KindLesson {
		return domain.DefaultLessonDurationMinutes
	}
	return domain.DefaultClassDurationMinutes
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Validate runs the pipeline. It returns nil when the booking is accepted,
// a *ValidationError when it is rejected, and any other error on lookup failures.
func (v *BookingValidator) Validate(ctx context.Context, bc *BookingContext) error {
	// 1. Обязательные поля
	if err := v.checkRequired(bc); err != nil {
		return err
	}

	// 2. Правила типа бронирования
	if err := v.checkTypeRules(ctx, bc); err != nil {
		return err
	}

	// Отмененное бронирование ничего не занимает
	if bc.Status != domain.StatusCanceled {
		// 3. Пересечения
		if err := v.checkConflicts(ctx, bc); err != nil {
			return err
		}

		// 4. Рабочие часы инструктора
		if err := v.checkAvailability(ctx, bc); err != nil {
			return err
		}
	}

	// 5. Вместимость
	if bc.Kind == domain.KindClass {
		if err := v.checkCapacity(bc); err != nil {
			return err
		}
	}

	// 6. Категория и лицензия
	return ValidateCategoryLicense(bc.Course, bc.Instructor, bc.Resource)
}

func (v *BookingValidator) checkRequired(bc *BookingContext) error {
	errs := FieldErrors{}

	if bc.Instructor == nil {
		errs.Add(FieldInstructorID, CodeRequiredField)
	}
	if bc.Start == nil {
		errs.Add(FieldScheduledTime, CodeRequiredField)
	}

	switch bc.Kind {
	case domain.KindLesson:
		if bc.Enrollment == nil {
			errs.Add(FieldEnrollmentID, CodeRequiredField)
		}
	case domain.KindClass:
		if bc.Course == nil {
			errs.Add(FieldCourseID, CodeRequiredField)
		}
		if bc.Resource == nil {
			errs.Add(FieldResourceID, CodeRequiredField)
		}
		if bc.MaxStudents == nil {
			errs.Add(FieldMaxStudents, CodeRequiredField)
		}
	default:
		return violation("kind", CodeRequiredField, "unknown booking kind %q", bc.Kind)
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs, Detail: "required fields are missing"}
	}

	if bc.Kind == domain.KindClass && len([]rune(bc.Name)) > domain.MaxNameLength {
		return violation(FieldName, CodeNameTooLong, "name must be at most %d characters", domain.MaxNameLength)
	}

	if bc.DurationMinutes < domain.MinSessionDurationMinutes || bc.DurationMinutes > domain.MaxSessionDurationMinutes {
		return violation(FieldDuration, CodeInvalidDuration, "duration must be between %d and %d minutes",
			domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	return nil
}

func (v *BookingValidator) checkTypeRules(ctx context.Context, bc *BookingContext) error {
	switch bc.Kind {
	case domain.KindLesson:
		if bc.Enrollment.Type != domain.CoursePractice {
			return violation(FieldEnrollmentID, CodePracticeEnrollmentRequired,
				"lessons require a PRACTICE enrollment, got %s", bc.Enrollment.Type)
		}
		if bc.Resource != nil {
			if !bc.Resource.IsVehicle() {
				return violation(FieldResourceID, CodeVehicleResourceRequired,
					"resource %d with capacity %d is not a vehicle", bc.Resource.ID, bc.Resource.MaxCapacity)
			}
			if bc.Status == domain.StatusScheduled && !bc.Resource.IsAvailable {
				return violation(FieldResourceID, CodeResourceUnavailable, "resource %d is unavailable", bc.Resource.ID)
			}
		}

	case domain.KindClass:
		if bc.Course.Type != domain.CourseTheory {
			return violation(FieldCourseID, CodeTheoryOnly, "classes are for THEORY courses only")
		}
		if !bc.Resource.IsClassroom() {
			return violation(FieldResourceID, CodeClassroomResourceRequired,
				"resource %d with capacity %d is not a classroom", bc.Resource.ID, bc.Resource.MaxCapacity)
		}
		if bc.Status == domain.StatusScheduled && !bc.Resource.IsAvailable {
			return violation(FieldResourceID, CodeResourceUnavailable, "resource %d is unavailable", bc.Resource.ID)
		}
		if len(bc.StudentIDs) > 0 {
			enrolled, err := v.catalog.EnrolledStudentIDs(ctx, bc.Course.ID, bc.StudentIDs)
			if err != nil {
				return fmt.Errorf("%w: Validate - enrolled students: %v", ErrCatalog, err)
			}
			if missing := difference(bc.StudentIDs, enrolled); len(missing) > 0 {
				return violation(FieldStudentIDs, CodeStudentNotEnrolledToCourse,
					"students %v are not enrolled in course %d", missing, bc.Course.ID)
			}
		}
	}
	return nil
}

func (v *BookingValidator) checkConflicts(ctx context.Context, bc *BookingContext) error {
	window := bc.Window()
	excl := bc.Exclusion()

	if err := v.detector.CheckInstructor(ctx, bc.Instructor.ID, window, excl); err != nil {
		return err
	}

	studentField := FieldStudentIDs
	if bc.Kind == domain.KindLesson {
		studentField = FieldEnrollmentID
	}
	if err := v.detector.CheckStudents(ctx, studentField, bc.Participants(), window, excl); err != nil {
		return err
	}

	if bc.Resource != nil {
		if err := v.detector.CheckResource(ctx, bc.Resource.ID, window, excl); err != nil {
			return err
		}
	}
	return nil
}

func (v *BookingValidator) checkAvailability(ctx context.Context, bc *BookingContext) error {
	entries, err := v.catalog.ListAvailability(ctx, bc.Instructor.ID)
	if err != nil {
		return fmt.Errorf("%w: Validate - availability: %v", ErrCatalog, err)
	}
	idx := BuildAvailabilityIndex(entries, v.loc, v.logger)
	return idx.Check(bc.Instructor.ID, *bc.Start)
}

func (v *BookingValidator) checkCapacity(bc *BookingContext) error {
	committed := 0
	if bc.Prior != nil {
		committed = len(bc.Prior.StudentIDs)
	}
	if err := ValidateMaxStudents(bc.Resource, *bc.MaxStudents, committed, bc.Prior != nil); err != nil {
		return err
	}
	return ValidateRoster(bc.Resource, *bc.MaxStudents, len(bc.StudentIDs))
}

func difference(all, subset []int64) []int64 {
	present := make(map[int64]struct{}, len(subset))
	for _, id := range subset {
		present[id] = struct{}{}
	}
	var out []int64
	for _, id := range all {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

const (
	tableInstructors    = "instructors"
	tableAvailabilities = "instructor_availabilities"
	tableResources      = "resources"
	tableCourses        = "courses"
	tableEnrollments    = "enrollments"
)

// Repository репозиторий справочных данных: инструкторы, их рабочие часы,
// ресурсы, курсы и записи студентов на курсы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetInstructor получает инструктора с разобранным набором категорий
func (r *Repository) GetInstructor(ctx context.Context, id int64) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "first_name", "last_name", "license_categories").
		From(tableInstructors).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructor - build select query: %v", ErrBuildQuery, err)
	}

	var (
		instructor domain.Instructor
		licenses   string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&instructor.ID,
		&instructor.FirstName,
		&instructor.LastName,
		&licenses,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetInstructor - scan instructor: %v", ErrScanRow, err)
	}

	// Пустая строка означает, что инструктор пока не может вести ни одну категорию
	if strings.TrimSpace(licenses) != "" {
		instructor.Licenses, err = domain.ParseLicenseSet(licenses)
		if err != nil {
			return nil, fmt.Errorf("%w: GetInstructor - instructor id=%d licenses %q: %v",
				ErrInvalidStoredValue, id, licenses, err)
		}
	}

	return &instructor, nil
}

// UpdateInstructorLicenses сохраняет канонический набор категорий инструктора
func (r *Repository) UpdateInstructorLicenses(ctx context.Context, id int64, licenses domain.LicenseSet) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableInstructors).
		Set("license_categories", licenses.String()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateInstructorLicenses - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateInstructorLicenses - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateInstructorLicenses - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInstructorNotFound
	}

	return nil
}

// ListAvailability возвращает рабочие часы инструктора по дням недели как есть,
// без нормализации: разбором занимается индекс доступности
func (r *Repository) ListAvailability(ctx context.Context, instructorID int64) ([]domain.AvailabilityEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("instructor_id", "day", "hours").
		From(tableAvailabilities).
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.AvailabilityEntry, 0)
	for rows.Next() {
		var (
			entry domain.AvailabilityEntry
			day   string
			hours pq.StringArray
		)
		if err := rows.Scan(&entry.InstructorID, &day, &hours); err != nil {
			return nil, fmt.Errorf("%w: ListAvailability - scan entry: %v", ErrScanRow, err)
		}
		entry.Day = domain.Weekday(day)
		entry.Hours = hours
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// UpsertAvailability заменяет рабочие часы инструктора на указанный день.
// Пустой список часов удаляет запись: инструктор в этот день не работает.
func (r *Repository) UpsertAvailability(ctx context.Context, entry domain.AvailabilityEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var (
		query string
		args  []interface{}
		err   error
	)
	if len(entry.Hours) == 0 {
		query, args, err = psqlbuilder.Delete(tableAvailabilities).
			Where(squirrel.Eq{"instructor_id": entry.InstructorID, "day": string(entry.Day)}).
			ToSql()
	} else {
		query, args, err = psqlbuilder.Insert(tableAvailabilities).
			Columns("instructor_id", "day", "hours").
			Values(entry.InstructorID, string(entry.Day), pq.Array(entry.Hours)).
			Suffix("ON CONFLICT (instructor_id, day) DO UPDATE SET hours = EXCLUDED.hours").
			ToSql()
	}
	if err != nil {
		return fmt.Errorf("%w: UpsertAvailability - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAvailability - execute query: %v", ErrExecQuery, err)
	}

	return nil
}

// GetResource получает ресурс по ID
func (r *Repository) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "max_capacity", "category", "is_available").
		From(tableResources).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - build select query: %v", ErrBuildQuery, err)
	}

	var (
		resource domain.Resource
		category string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&resource.Name,
		&resource.MaxCapacity,
		&category,
		&resource.IsAvailable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - scan resource: %v", ErrScanRow, err)
	}

	resource.Category, err = domain.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: GetResource - resource id=%d: %v", ErrInvalidStoredValue, id, err)
	}

	return &resource, nil
}

// GetCourse получает курс по ID
func (r *Repository) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "category", "type", "required_lessons").
		From(tableCourses).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourse - build select query: %v", ErrBuildQuery, err)
	}

	var (
		course     domain.Course
		category   string
		courseType string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&course.Name,
		&category,
		&courseType,
		&course.RequiredLessons,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourse - scan course: %v", ErrScanRow, err)
	}

	if course.Category, err = domain.ParseCategory(category); err != nil {
		return nil, fmt.Errorf("%w: GetCourse - course id=%d: %v", ErrInvalidStoredValue, id, err)
	}
	if course.Type, err = domain.ParseCourseType(courseType); err != nil {
		return nil, fmt.Errorf("%w: GetCourse - course id=%d: %v", ErrInvalidStoredValue, id, err)
	}

	return &course, nil
}

// GetEnrollment получает запись студента на курс по ID
func (r *Repository) GetEnrollment(ctx context.Context, id int64) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "student_id", "course_id", "type", "status").
		From(tableEnrollments).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnrollment - build select query: %v", ErrBuildQuery, err)
	}

	var (
		enrollment     domain.Enrollment
		enrollmentType string
		status         string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollmentType,
		&status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnrollment - scan enrollment: %v", ErrScanRow, err)
	}

	if enrollment.Type, err = domain.ParseCourseType(enrollmentType); err != nil {
		return nil, fmt.Errorf("%w: GetEnrollment - enrollment id=%d: %v", ErrInvalidStoredValue, id, err)
	}
	enrollment.Status = domain.EnrollmentStatus(status)

	return &enrollment, nil
}

// EnrolledStudentIDs возвращает тех студентов из списка, у которых есть
// действующая (не отмененная) запись на курс
func (r *Repository) EnrolledStudentIDs(ctx context.Context, courseID int64, studentIDs []int64) ([]int64, error) {
	if len(studentIDs) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := enrolledStudentsQuery(courseID, studentIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EnrolledStudentIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: EnrolledStudentIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(studentIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: EnrolledStudentIDs - scan student id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: EnrolledStudentIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func enrolledStudentsQuery(courseID int64, studentIDs []int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("DISTINCT student_id").
		From(tableEnrollments).
		Where(squirrel.Eq{"course_id": courseID}).
		Where(squirrel.Eq{"student_id": studentIDs}).
		Where(squirrel.NotEq{"status": string(domain.EnrollmentCanceled)}).
		OrderBy("student_id ASC")
}

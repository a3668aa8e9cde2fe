package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

func lessonsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"l.id",
		"l.enrollment_id",
		"e.student_id",
		"e.course_id",
		"l.instructor_id",
		"l.resource_id",
		"l.scheduled_time",
		"l.duration_minutes",
		"l.status",
		"l.notes",
		"l.created_at",
		"l.updated_at",
	).
		From(tableLessons + " l").
		Join("enrollments e ON e.id = l.enrollment_id")
}

// CreateLesson создает урок. Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) CreateLesson(ctx context.Context, lesson *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableLessons).
		Columns(
			"enrollment_id",
			"instructor_id",
			"resource_id",
			"scheduled_time",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			lesson.EnrollmentID,
			lesson.InstructorID,
			lesson.ResourceID,
			lesson.ScheduledTime,
			lesson.DurationMinutes,
			lesson.Status,
			lesson.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLesson - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&lesson.ID, &lesson.CreatedAt, &lesson.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLesson - execute insert: %v", ErrExecQuery, err)
	}

	lesson.Kind = domain.KindLesson
	return lesson, nil
}

// UpdateLesson сохраняет изменения урока
func (r *Repository) UpdateLesson(ctx context.Context, lesson *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableLessons).
		Set("enrollment_id", lesson.EnrollmentID).
		Set("instructor_id", lesson.InstructorID).
		Set("resource_id", lesson.ResourceID).
		Set("scheduled_time", lesson.ScheduledTime).
		Set("duration_minutes", lesson.DurationMinutes).
		Set("status", lesson.Status).
		Set("notes", lesson.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lesson.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLesson - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLesson - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLesson - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLessonNotFound
	}

	return nil
}

// GetLessonByID получает урок по ID. Внутри транзакции строка блокируется.
func (r *Repository) GetLessonByID(ctx context.Context, id int64) (*domain.Booking, error) {
	q := lessonsSelect().Where(squirrel.Eq{"l.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		q = q.Suffix("FOR UPDATE OF l")
	}

	lessons, err := r.findLessons(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("GetLessonByID: %w", err)
	}
	if len(lessons) == 0 {
		return nil, ErrLessonNotFound
	}
	return lessons[0], nil
}

func (r *Repository) findLessons(ctx context.Context, q squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: findLessons - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: findLessons - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// scanLessons сканирует результаты запроса в слайс уроков
func scanLessons(rows *sql.Rows) ([]*domain.Booking, error) {
	lessons := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			lesson       domain.Booking
			enrollmentID int64
			studentID    int64
			resourceID   sql.NullInt64
			notes        sql.NullString
		)

		err := rows.Scan(
			&lesson.ID,
			&enrollmentID,
			&studentID,
			&lesson.CourseID,
			&lesson.InstructorID,
			&resourceID,
			&lesson.ScheduledTime,
			&lesson.DurationMinutes,
			&lesson.Status,
			&notes,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanLessons: %v", ErrScanRow, err)
		}

		lesson.Kind = domain.KindLesson
		lesson.EnrollmentID = &enrollmentID
		lesson.StudentID = &studentID
		if resourceID.Valid {
			lesson.ResourceID = &resourceID.Int64
		}
		if notes.Valid {
			lesson.Notes = &notes.String
		}

		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scanLessons - rows error: %v", ErrScanRow, err)
	}

	return lessons, nil
}

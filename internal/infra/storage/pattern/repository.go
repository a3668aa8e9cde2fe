package pattern

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

const (
	tablePatterns        = "scheduled_class_patterns"
	tablePatternStudents = "scheduled_class_pattern_students"
)

// Repository репозиторий шаблонов групповых занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает шаблон вместе со списком студентов.
// Вызывающий должен открыть транзакцию, если нужна атомарность обеих вставок.
func (r *Repository) Create(ctx context.Context, p *domain.Pattern) (*domain.Pattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertPatternQuery(p).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.addStudents(ctx, p.ID, p.StudentIDs); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	return p, nil
}

// GetByID получает шаблон со списком студентов. Внутри транзакции строка шаблона блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPatternQuery(id, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p     domain.Pattern
		days  pq.StringArray
		times pq.StringArray
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.CourseID,
		&p.InstructorID,
		&p.ResourceID,
		&days,
		&times,
		&p.StartDate,
		&p.NumLessons,
		&p.DefaultDurationMinutes,
		&p.DefaultMaxStudents,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatternNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan pattern: %v", ErrScanRow, err)
	}

	p.RecurrenceDays = make([]domain.Weekday, len(days))
	for i, d := range days {
		p.RecurrenceDays[i] = domain.Weekday(d)
	}
	p.Times = times

	p.StudentIDs, err = r.listStudents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	return &p, nil
}

// Delete удаляет шаблон. Занятия шаблона должны быть удалены заранее.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tablePatterns).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPatternNotFound
	}

	return nil
}

func (r *Repository) addStudents(ctx context.Context, patternID int64, studentIDs []int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tablePatternStudents).Columns("pattern_id", "student_id")
	for _, studentID := range studentIDs {
		insert = insert.Values(patternID, studentID)
	}

	query, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: addStudents - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: addStudents - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) listStudents(ctx context.Context, patternID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("student_id").
		From(tablePatternStudents).
		Where(squirrel.Eq{"pattern_id": patternID}).
		OrderBy("student_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listStudents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listStudents - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: listStudents - scan student id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listStudents - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func insertPatternQuery(p *domain.Pattern) squirrel.InsertBuilder {
	days := make([]string, len(p.RecurrenceDays))
	for i, d := range p.RecurrenceDays {
		days[i] = string(d)
	}

	return psqlbuilder.Insert(tablePatterns).
		Columns(
			"name",
			"course_id",
			"instructor_id",
			"resource_id",
			"recurrence_days",
			"times",
			"start_date",
			"num_lessons",
			"default_duration_minutes",
			"default_max_students",
		).
		Values(
			p.Name,
			p.CourseID,
			p.InstructorID,
			p.ResourceID,
			pq.Array(days),
			pq.Array(p.Times),
			p.StartDate,
			p.NumLessons,
			p.DefaultDurationMinutes,
			p.DefaultMaxStudents,
		).
		Suffix("RETURNING id, created_at, updated_at")
}

func selectPatternQuery(id int64, forUpdate bool) squirrel.SelectBuilder {
	q := psqlbuilder.Select(
		"id",
		"name",
		"course_id",
		"instructor_id",
		"resource_id",
		"recurrence_days",
		"times",
		"start_date",
		"num_lessons",
		"default_duration_minutes",
		"default_max_students",
		"created_at",
		"updated_at",
	).
		From(tablePatterns).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

var classColumns = []string{
	"pattern_id",
	"course_id",
	"name",
	"instructor_id",
	"resource_id",
	"scheduled_time",
	"duration_minutes",
	"max_students",
	"status",
}

func classesSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"c.id",
		"c.pattern_id",
		"c.course_id",
		"c.name",
		"c.instructor_id",
		"c.resource_id",
		"c.scheduled_time",
		"c.duration_minutes",
		"c.max_students",
		"c.status",
		"c.created_at",
		"c.updated_at",
	).
		From(tableClasses + " c")
}

func classValues(class *domain.Booking) []interface{} {
	return []interface{}{
		class.PatternID,
		class.CourseID,
		class.Name,
		class.InstructorID,
		class.ResourceID,
		class.ScheduledTime,
		class.DurationMinutes,
		class.MaxStudents,
		class.Status,
	}
}

// CreateClass создает групповое занятие вместе с составом студентов
func (r *Repository) CreateClass(ctx context.Context, class *domain.Booking) (*domain.Booking, error) {
	created, err := r.CreateClasses(ctx, []*domain.Booking{class})
	if err != nil {
		return nil, fmt.Errorf("CreateClass: %w", err)
	}
	return created[0], nil
}

// CreateClasses пакетно создает занятия одним INSERT и записывает их составы.
// Вызывающий код должен обернуть вызов в транзакцию, чтобы занятия и составы сохранились атомарно.
func (r *Repository) CreateClasses(ctx context.Context, classes []*domain.Booking) ([]*domain.Booking, error) {
	if len(classes) == 0 {
		return classes, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableClasses).Columns(classColumns...)
	for _, class := range classes {
		insert = insert.Values(classValues(class)...)
	}

	query, args, err := insert.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateClasses - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateClasses - execute insert: %v", ErrExecQuery, err)
	}

	// PostgreSQL возвращает RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(classes) {
			break
		}
		if err := rows.Scan(&classes[i].ID, &classes[i].CreatedAt, &classes[i].UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: CreateClasses - scan id: %v", ErrScanRow, err)
		}
		classes[i].Kind = domain.KindClass
		i++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: CreateClasses - rows error: %v", ErrScanRow, err)
	}
	rows.Close()

	if i != len(classes) {
		return nil, fmt.Errorf("%w: CreateClasses - inserted %d of %d classes", ErrExecQuery, i, len(classes))
	}

	for _, class := range classes {
		if err := r.AddStudents(ctx, class.ID, class.StudentIDs); err != nil {
			return nil, fmt.Errorf("CreateClasses: %w", err)
		}
	}

	return classes, nil
}

// UpdateClass сохраняет изменения занятия и заменяет состав студентов
func (r *Repository) UpdateClass(ctx context.Context, class *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableClasses).
		Set("course_id", class.CourseID).
		Set("name", class.Name).
		Set("instructor_id", class.InstructorID).
		Set("resource_id", class.ResourceID).
		Set("scheduled_time", class.ScheduledTime).
		Set("duration_minutes", class.DurationMinutes).
		Set("max_students", class.MaxStudents).
		Set("status", class.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": class.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateClass - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateClass - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateClass - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClassNotFound
	}

	// Полная замена состава
	query, args, err = psqlbuilder.Delete(tableClassStudents).
		Where(squirrel.Eq{"class_id": class.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateClass - build roster delete: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateClass - clear roster: %v", ErrExecQuery, err)
	}

	return r.AddStudents(ctx, class.ID, class.StudentIDs)
}

// UpdateClassStatus обновляет статус занятия
func (r *Repository) UpdateClassStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableClasses).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateClassStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateClassStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateClassStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

// GetClassByID получает занятие с составом студентов. Внутри транзакции строка блокируется.
func (r *Repository) GetClassByID(ctx context.Context, id int64) (*domain.Booking, error) {
	q := classesSelect().Where(squirrel.Eq{"c.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		q = q.Suffix("FOR UPDATE")
	}

	classes, err := r.findClasses(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("GetClassByID: %w", err)
	}
	if len(classes) == 0 {
		return nil, ErrClassNotFound
	}
	return classes[0], nil
}

// ListClassesByPattern возвращает все занятия шаблона по времени начала
func (r *Repository) ListClassesByPattern(ctx context.Context, patternID int64) ([]*domain.Booking, error) {
	q := classesSelect().
		Where(squirrel.Eq{"c.pattern_id": patternID}).
		OrderBy("c.scheduled_time ASC")

	classes, err := r.findClasses(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ListClassesByPattern: %w", err)
	}
	return classes, nil
}

// DeleteClassesByPattern удаляет все занятия шаблона (составы удаляются каскадно) и возвращает их количество
func (r *Repository) DeleteClassesByPattern(ctx context.Context, patternID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableClasses).
		Where(squirrel.Eq{"pattern_id": patternID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteClassesByPattern - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteClassesByPattern - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteClassesByPattern - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// AddStudents добавляет студентов в состав занятия, уже добавленные пропускаются
func (r *Repository) AddStudents(ctx context.Context, classID int64, studentIDs []int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableClassStudents).Columns("class_id", "student_id")
	for _, studentID := range studentIDs {
		insert = insert.Values(classID, studentID)
	}

	query, args, err := insert.Suffix("ON CONFLICT (class_id, student_id) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddStudents - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddStudents - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveStudent удаляет студента из состава занятия
func (r *Repository) RemoveStudent(ctx context.Context, classID, studentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableClassStudents).
		Where(squirrel.Eq{"class_id": classID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveStudent - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveStudent - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveStudent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStudentNotInClass
	}

	return nil
}

func (r *Repository) findClasses(ctx context.Context, q squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: findClasses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: findClasses - execute query: %v", ErrExecQuery, err)
	}

	classes, err := scanClasses(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if err := r.loadRosters(ctx, classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// loadRosters заполняет StudentIDs одним запросом на все занятия
func (r *Repository) loadRosters(ctx context.Context, classes []*domain.Booking) error {
	if len(classes) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Booking, len(classes))
	ids := make([]int64, 0, len(classes))
	for _, c := range classes {
		byID[c.ID] = c
		c.StudentIDs = make([]int64, 0)
		ids = append(ids, c.ID)
	}

	query, args, err := psqlbuilder.Select("class_id", "student_id").
		From(tableClassStudents).
		Where(squirrel.Eq{"class_id": ids}).
		OrderBy("class_id ASC", "student_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadRosters - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadRosters - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var classID, studentID int64
		if err := rows.Scan(&classID, &studentID); err != nil {
			return fmt.Errorf("%w: loadRosters - scan: %v", ErrScanRow, err)
		}
		if c, ok := byID[classID]; ok {
			c.StudentIDs = append(c.StudentIDs, studentID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadRosters - rows error: %v", ErrScanRow, err)
	}
	return nil
}

// scanClasses сканирует результаты запроса в слайс занятий
func scanClasses(rows *sql.Rows) ([]*domain.Booking, error) {
	classes := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			class      domain.Booking
			patternID  sql.NullInt64
			resourceID int64
		)

		err := rows.Scan(
			&class.ID,
			&patternID,
			&class.CourseID,
			&class.Name,
			&class.InstructorID,
			&resourceID,
			&class.ScheduledTime,
			&class.DurationMinutes,
			&class.MaxStudents,
			&class.Status,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanClasses: %v", ErrScanRow, err)
		}

		class.Kind = domain.KindClass
		class.ResourceID = &resourceID
		if patternID.Valid {
			class.PatternID = &patternID.Int64
		}

		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanClasses - rows error: %v", ErrScanRow, err)
	}

	return classes, nil
}

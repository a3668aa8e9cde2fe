package booking

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
)

const (
	tableLessons       = "lessons"
	tableClasses       = "scheduled_classes"
	tableClassStudents = "scheduled_class_students"
)

// Repository репозиторий уроков и групповых занятий.
// Обе таблицы участвуют в поиске пересечений как единый источник бронирований.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindActiveBookings возвращает уроки и занятия, подходящие под фильтр, отсортированные по времени начала.
// Внутри транзакции найденные строки блокируются (FOR UPDATE), чтобы проверка
// пересечений и запись нового бронирования были атомарны.
func (r *Repository) FindActiveBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	forUpdate := dbmetrics.IsInTransaction(ctx)
	result := make([]*domain.Booking, 0)

	if filter.IncludesKind(domain.KindLesson) {
		lessons, err := r.findLessons(ctx, lessonsFilterQuery(filter, forUpdate))
		if err != nil {
			return nil, fmt.Errorf("FindActiveBookings: %w", err)
		}
		result = append(result, lessons...)
	}

	if filter.IncludesKind(domain.KindClass) {
		classes, err := r.findClasses(ctx, classesFilterQuery(filter, forUpdate))
		if err != nil {
			return nil, fmt.Errorf("FindActiveBookings: %w", err)
		}
		result = append(result, classes...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScheduledTime.Before(result[j].ScheduledTime)
	})

	return result, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func lessonsFilterQuery(filter domain.BookingFilter, forUpdate bool) squirrel.SelectBuilder {
	q := lessonsSelect()

	if filter.InstructorID != nil {
		q = q.Where(squirrel.Eq{"l.instructor_id": *filter.InstructorID})
	}
	if filter.ResourceID != nil {
		q = q.Where(squirrel.Eq{"l.resource_id": *filter.ResourceID})
	}
	if filter.StudentID != nil {
		q = q.Where(squirrel.Eq{"e.student_id": *filter.StudentID})
	}
	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"l.status": statusStrings(filter.Statuses)})
	}
	if !filter.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"l.scheduled_time": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(squirrel.Lt{"l.scheduled_time": filter.To})
	}

	q = q.OrderBy("l.scheduled_time ASC")
	if forUpdate {
		q = q.Suffix("FOR UPDATE OF l")
	}
	return q
}

func classesFilterQuery(filter domain.BookingFilter, forUpdate bool) squirrel.SelectBuilder {
	q := classesSelect()

	if filter.InstructorID != nil {
		q = q.Where(squirrel.Eq{"c.instructor_id": *filter.InstructorID})
	}
	if filter.ResourceID != nil {
		q = q.Where(squirrel.Eq{"c.resource_id": *filter.ResourceID})
	}
	if filter.StudentID != nil {
		q = q.Where(squirrel.Expr(
			"c.id IN (SELECT class_id FROM "+tableClassStudents+" WHERE student_id = ?)", *filter.StudentID))
	}
	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"c.status": statusStrings(filter.Statuses)})
	}
	if !filter.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"c.scheduled_time": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(squirrel.Lt{"c.scheduled_time": filter.To})
	}

	q = q.OrderBy("c.scheduled_time ASC")
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

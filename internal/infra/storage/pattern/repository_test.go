package pattern

import (
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

func TestSelectPatternQuery(t *testing.T) {
	query, args, err := selectPatternQuery(42, false).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "SELECT id, name, course_id"))
	assert.True(t, strings.HasSuffix(query, "FROM scheduled_class_patterns WHERE id = $1"))
	assert.Equal(t, []interface{}{int64(42)}, args)

	query, _, err = selectPatternQuery(42, true).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "WHERE id = $1 FOR UPDATE"))
}

func TestInsertPatternQuery_ArraysAsPostgresArrays(t *testing.T) {
	p := &domain.Pattern{
		Name:                   "B theory",
		CourseID:               1,
		InstructorID:           2,
		ResourceID:             3,
		RecurrenceDays:         []domain.Weekday{domain.Monday, domain.Wednesday},
		Times:                  []string{"09:00", "14:00"},
		StartDate:              time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		NumLessons:             10,
		DefaultDurationMinutes: 60,
		DefaultMaxStudents:     12,
	}

	query, args, err := insertPatternQuery(p).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "INSERT INTO scheduled_class_patterns"))
	assert.True(t, strings.HasSuffix(query, "RETURNING id, created_at, updated_at"))
	require.Len(t, args, 10)

	days, ok := args[4].(*pq.StringArray)
	require.True(t, ok, "recurrence_days must be a pq array")
	assert.Equal(t, pq.StringArray{"MONDAY", "WEDNESDAY"}, *days)

	times, ok := args[5].(*pq.StringArray)
	require.True(t, ok, "times must be a pq array")
	assert.Equal(t, pq.StringArray{"09:00", "14:00"}, *times)
}

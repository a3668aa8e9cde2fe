package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonsFilterQuery(t *testing.T) {
	from := time.Date(2025, 3, 3, 2, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC)

	filter := domain.BookingFilter{
		InstructorID: ptr.Ptr(int64(7)),
		Statuses:     domain.ActiveStatuses,
		From:         from,
		To:           to,
	}

	query, args, err := lessonsFilterQuery(filter, false).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM lessons l JOIN enrollments e ON e.id = l.enrollment_id")
	assert.Contains(t, query, "l.instructor_id = $1")
	assert.Contains(t, query, "l.status IN ($2,$3)")
	assert.Contains(t, query, "l.scheduled_time >= $4")
	assert.Contains(t, query, "l.scheduled_time < $5")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(7), "SCHEDULED", "COMPLETED", from, to}, args)
}

func TestLessonsFilterQuery_StudentAndLock(t *testing.T) {
	filter := domain.BookingFilter{StudentID: ptr.Ptr(int64(100))}

	query, args, err := lessonsFilterQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "e.student_id = $1")
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE OF l"), query)
	assert.Equal(t, []interface{}{int64(100)}, args)
}

func TestClassesFilterQuery(t *testing.T) {
	filter := domain.BookingFilter{
		ResourceID: ptr.Ptr(int64(3)),
		StudentID:  ptr.Ptr(int64(100)),
	}

	query, args, err := classesFilterQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM scheduled_classes c")
	assert.Contains(t, query, "c.resource_id = $1")
	assert.Contains(t, query, "c.id IN (SELECT class_id FROM scheduled_class_students WHERE student_id = $2)")
	assert.Contains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(3), int64(100)}, args)
}

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrolledStudentsQuery(t *testing.T) {
	query, args, err := enrolledStudentsQuery(7, []int64{1, 2, 3}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT DISTINCT student_id FROM enrollments WHERE course_id = $1 AND student_id IN ($2,$3,$4) AND status <> $5 ORDER BY student_id ASC",
		query)
	assert.Equal(t, []interface{}{int64(7), int64(1), int64(2), int64(3), "CANCELED"}, args)
}

func TestEnrolledStudentIDs_EmptyInputSkipsQuery(t *testing.T) {
	// nil executor: запрос к БД не должен выполняться
	repo := NewRepository(nil)

	ids, err := repo.EnrolledStudentIDs(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

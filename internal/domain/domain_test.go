package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeWindow_Overlaps(t *testing.T) {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	w := func(offsetMin, duration int) TimeWindow {
		return TimeWindow{Start: base.Add(time.Duration(offsetMin) * time.Minute), DurationMinutes: duration}
	}

	tests := []struct {
		name     string
		a, b     TimeWindow
		expected bool
	}{
		{"частичное пересечение", w(0, 60), w(30, 60), true},
		{"вложенное окно", w(0, 120), w(30, 30), true},
		{"одинаковые окна", w(0, 60), w(0, 60), true},
		{"касание концов", w(0, 60), w(60, 60), false},
		{"раздельные окна", w(0, 30), w(90, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestNewTimeWindow(t *testing.T) {
	start := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

	win, err := NewTimeWindow(start, 90)
	require.NoError(t, err)
	assert.Equal(t, start.Add(90*time.Minute), win.End())

	_, err = NewTimeWindow(start, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewTimeWindow(start, MaxSessionDurationMinutes+1)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestParseLicenseSet(t *testing.T) {
	set, err := ParseLicenseSet(" c, b,BE ,b")
	require.NoError(t, err)
	assert.Equal(t, "B,C,BE", set.String())
	assert.True(t, set.Contains("be"))
	assert.False(t, set.Contains(CategoryD))

	_, err = ParseLicenseSet("B,XYZ")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = ParseLicenseSet(" , ")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestResourceClassification(t *testing.T) {
	car := Resource{MaxCapacity: 2}
	room := Resource{MaxCapacity: 30}

	assert.True(t, car.IsVehicle())
	assert.False(t, car.IsClassroom())
	assert.True(t, room.IsClassroom())
	assert.False(t, room.IsVehicle())
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)
	assert.Equal(t, time.Monday, d.Time())
	assert.Equal(t, Sunday, WeekdayOf(time.Sunday))

	_, err = ParseWeekday("FUNDAY")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("scheduled")
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, s)

	_, err = ParseBookingStatus("PENDING")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBooking_Roster(t *testing.T) {
	b := Booking{Kind: KindClass, MaxStudents: 3, StudentIDs: []int64{1, 2}}

	assert.True(t, b.HasStudent(2))
	assert.False(t, b.HasStudent(5))
	assert.Equal(t, 1, b.AvailableSpots())
	assert.False(t, b.IsFull())

	b.StudentIDs = append(b.StudentIDs, 3)
	assert.True(t, b.IsFull())
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "Theory B - 2025-03-03 10:00", ClassName("Theory B", "2025-03-03 10:00"))

	long := ClassName(strings.Repeat("x", MaxNameLength), "2025-03-03 10:00")
	assert.Len(t, []rune(long), MaxNameLength)
	assert.True(t, strings.HasSuffix(long, " - 2025-03-03 10:00"))

	cyrillic := ClassName(strings.Repeat("ж", MaxNameLength), "2025-03-03 10:00")
	assert.Len(t, []rune(cyrillic), MaxNameLength)
}

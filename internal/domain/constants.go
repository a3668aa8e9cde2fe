package domain

import "time"

// Default session durations
const (
	DefaultLessonDurationMinutes = 90
	DefaultClassDurationMinutes  = 60
)

// Business validation constants
const (
	MinSessionDurationMinutes = 1
	MaxSessionDurationMinutes = 480 // 8 hours

	// VehicleCapacityThreshold resources up to this capacity are vehicles, above it classrooms
	VehicleCapacityThreshold = 2

	// PatternIterationFactor bounds pattern expansion to count × factor calendar days
	PatternIterationFactor = 10

	MaxPatternSessions = 500
	MaxNameLength      = 100
)

// DefaultConflictLookback covers the longest possible session ending inside a proposed window
const DefaultConflictLookback = MaxSessionDurationMinutes * time.Minute

// DefaultBusinessTimezone time zone in which instructor working hours are declared
const DefaultBusinessTimezone = "Europe/Chisinau"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy instructor, resource and students.
// Completed bookings still block their window.
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusCompleted,
}

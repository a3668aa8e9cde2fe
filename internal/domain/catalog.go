package domain

import "time"

// Resource is a vehicle or a classroom.
// The kind is derived from capacity, not stored.
type Resource struct {
	ID          int64
	Name        string
	MaxCapacity int
	Category    Category
	IsAvailable bool
}

// IsVehicle returns true for resources seating an instructor and one student
func (r *Resource) IsVehicle() bool {
	return r.MaxCapacity > 0 && r.MaxCapacity <= VehicleCapacityThreshold
}

// IsClassroom returns true for resources hosting group classes
func (r *Resource) IsClassroom() bool {
	return r.MaxCapacity > VehicleCapacityThreshold
}

// Course represents a theory or practice course of a license category
type Course struct {
	ID              int64
	Name            string
	Category        Category
	Type            CourseType
	RequiredLessons int
}

// EnrollmentStatus lifecycle of a student's enrollment in a course
type EnrollmentStatus string

const (
	EnrollmentInProgress EnrollmentStatus = "IN_PROGRESS"
	EnrollmentCompleted  EnrollmentStatus = "COMPLETED"
	EnrollmentCanceled   EnrollmentStatus = "CANCELED"
)

// Enrollment links a student to a course; lessons are booked against it
type Enrollment struct {
	ID        int64
	StudentID int64
	CourseID  int64
	Type      CourseType
	Status    EnrollmentStatus
}

// Instructor with a parsed license set
type Instructor struct {
	ID        int64
	FirstName string
	LastName  string
	Licenses  LicenseSet
}

// FullName returns "First Last"
func (i *Instructor) FullName() string {
	return i.FirstName + " " + i.LastName
}

// AvailabilityEntry raw working hours of an instructor for one weekday.
// Hours are start-of-interval tokens and may be malformed.
type AvailabilityEntry struct {
	InstructorID int64
	Day          Weekday
	Hours        []string
}

// Pattern is a recurrence template producing scheduled classes
type Pattern struct {
	ID                     int64
	Name                   string
	CourseID               int64
	InstructorID           int64
	ResourceID             int64
	RecurrenceDays         []Weekday
	Times                  []string
	StartDate              time.Time
	NumLessons             int
	DefaultDurationMinutes int
	DefaultMaxStudents     int
	StudentIDs             []int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// PatternStatistics aggregates the classes generated by a pattern
type PatternStatistics struct {
	PatternID                  int64
	TotalClasses               int
	ScheduledClasses           int
	CompletedClasses           int
	CanceledClasses            int
	RosterSize                 int
	TotalEnrolledStudents      int
	TotalCapacity              int
	AverageStudentsPerClass    float64
	CapacityUtilizationPercent float64
}

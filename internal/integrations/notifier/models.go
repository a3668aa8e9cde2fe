package notifier

import "time"

// ClassesGenerated событие о генерации занятий по шаблону
type ClassesGenerated struct {
	PatternID      int64            `json:"pattern_id"`
	PatternName    string           `json:"pattern_name"`
	Mode           string           `json:"mode"` // generate | regenerate
	InstructorID   int64            `json:"instructor_id"`
	ClassIDs       []int64          `json:"class_ids"`
	DeletedClasses int64            `json:"deleted_classes"`
	FirstClassAt   *time.Time       `json:"first_class_at,omitempty"`
	LastClassAt    *time.Time       `json:"last_class_at,omitempty"`
	Truncated      bool             `json:"truncated"`
	Enrollment     EnrollmentResult `json:"enrollment"`
}

// EnrollmentResult итог автоматической записи студентов шаблона
type EnrollmentResult struct {
	TotalStudents int `json:"total_students"`
	Enrolled      int `json:"enrolled"`
	Failed        int `json:"failed"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

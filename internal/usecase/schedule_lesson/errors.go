package schedule_lesson

import "errors"

var (
	// ErrLessonNotFound возвращается, когда редактируемый урок не найден
	ErrLessonNotFound = errors.New("schedule_lesson: lesson not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_lesson: internal error")
)

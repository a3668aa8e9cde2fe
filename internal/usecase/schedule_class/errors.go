package schedule_class

import "errors"

var (
	// ErrClassNotFound возвращается, когда редактируемое занятие не найдено
	ErrClassNotFound = errors.New("schedule_class: class not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_class: internal error")
)

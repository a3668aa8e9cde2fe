package bookings

import "errors"

var (
	// ErrLessonNotFound возвращается, когда урок не найден
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrClassNotFound возвращается, когда занятие не найдено
	ErrClassNotFound = errors.New("class not found")

	// ErrCannotCancel возвращается, когда урок не может быть отменен
	ErrCannotCancel = errors.New("lesson cannot be cancelled")

	// ErrInvalidTimeRange возвращается при некорректном периоде расписания
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)

package classes

import "errors"

var (
	// ErrClassNotFound возвращается, когда занятие не найдено
	ErrClassNotFound = errors.New("class not found")

	// ErrAlreadyEnrolled возвращается, когда студент уже записан на занятие
	ErrAlreadyEnrolled = errors.New("student already enrolled")

	// ErrNotEnrolled возвращается, когда студента нет в составе занятия
	ErrNotEnrolled = errors.New("student not enrolled")

	// ErrClassFull возвращается, когда в занятии нет свободных мест
	ErrClassFull = errors.New("class is full")

	// ErrClassNotScheduled возвращается при изменении состава прошедшего или отмененного занятия
	ErrClassNotScheduled = errors.New("class is not scheduled")

	// ErrCannotCancel возвращается, когда занятие не может быть отменено
	ErrCannotCancel = errors.New("class cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("classes.service: internal error")
)

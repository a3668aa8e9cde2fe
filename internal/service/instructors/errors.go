package instructors

import "errors"

var (
	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("instructor not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("instructors.service: internal error")
)

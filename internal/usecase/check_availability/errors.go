package check_availability

import "errors"

var (
	// ErrBookingNotFound возвращается, когда проверяемое существующее бронирование не найдено
	ErrBookingNotFound = errors.New("check_availability: booking not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("check_availability: instructor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)

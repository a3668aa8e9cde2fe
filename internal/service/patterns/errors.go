package patterns

import "errors"

var (
	// ErrPatternNotFound возвращается, когда шаблон не найден
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("patterns.service: internal error")
)

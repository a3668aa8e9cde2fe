package generate_classes

import "errors"

var (
	// ErrPatternNotFound возвращается, когда шаблон не найден
	ErrPatternNotFound = errors.New("generate_classes: pattern not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_classes: internal error")
)

package catalog

import "errors"

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена
	ErrFieldNotFound = errors.New("field not found")

	// ErrInvalidInput возвращается при некорректном фильтре
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)

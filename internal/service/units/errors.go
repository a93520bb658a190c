package units

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("units: unit not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("units: internal error")
)

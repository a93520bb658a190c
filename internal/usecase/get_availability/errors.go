package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("get_availability: date is too far in the future")

	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("get_availability: unit not found")

	// ErrSeatNotFound возвращается, когда место не найдено или неактивно
	ErrSeatNotFound = errors.New("get_availability: seat not found")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("get_availability: internal error")
)

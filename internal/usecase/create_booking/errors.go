package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidInterval возвращается при структурно некорректном интервале
	// (конец раньше начала, почасовой класс без времен и т.п.)
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("create_booking: unit not found")

	// ErrUnitInactive возвращается, когда юнит выведен из бронирования
	ErrUnitInactive = errors.New("create_booking: unit is not active")

	// ErrSeatNotFound возвращается, когда место не найдено или неактивно
	ErrSeatNotFound = errors.New("create_booking: seat not found")

	// ErrSeatRequired возвращается, когда юнит бронируется по местам,
	// а место в запросе не указано
	ErrSeatRequired = errors.New("create_booking: unit is booked per seat, seat is required")

	// ErrClassNotAllowed возвращается, когда юнит не допускает этот класс бронирования
	ErrClassNotAllowed = errors.New("create_booking: duration class is not allowed for this unit")

	// ErrSlotNotAvailable возвращается, когда допуск не прошел: в запрошенном
	// интервале вместимость уже исчерпана
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrConcurrencyConflict возвращается, когда конкурирующая транзакция
	// привела к аборту и повторы исчерпаны; запрос можно повторить
	ErrConcurrencyConflict = errors.New("create_booking: concurrent booking conflict, retry the request")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("create_booking: internal error")
)

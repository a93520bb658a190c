package get_availability

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	unitRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/unit"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UnitID == uuid.Nil {
		return fmt.Errorf("%w: unitID is required", ErrInvalidInput)
	}

	if req.SeatID != nil && *req.SeatID == uuid.Nil {
		return fmt.Errorf("%w: seatID must not be empty when given", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(date, today jalali.Date) error {
	if date.Before(today) {
		return ErrInvalidDate
	}

	if date.After(today.AddDays(domain.MaxAdvanceBookingDays)) {
		return fmt.Errorf("%w: can only query %d days in advance",
			ErrDateTooFarInFuture, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// todayFor возвращает сегодняшнюю джалали-дату по провайдеру времени
func todayFor(tp TimeProvider) jalali.Date {
	return jalali.FromTime(tp.Now())
}

// isNotFound возвращает true для ошибок "не найдено" слоя хранилища
func isNotFound(err error) bool {
	return errors.Is(err, unitRepo.ErrUnitNotFound) || errors.Is(err, unitRepo.ErrSeatNotFound)
}

package create_booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	unitRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/unit"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
)

// validateRequest валидирует входные данные запроса.
// Интервальные инварианты проверяются через доменную модель, чтобы
// структурно некорректный запрос не дошел до хранилища.
func validateRequest(req *Request) error {
	if req.UnitID == uuid.Nil {
		return fmt.Errorf("%w: unitID is required", ErrInvalidInput)
	}

	if req.SeatID != nil && *req.SeatID == uuid.Nil {
		return fmt.Errorf("%w: seatID must not be empty when given", ErrInvalidInput)
	}

	if req.FullName == "" {
		return fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}

	if len(req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests is too long", ErrInvalidInput)
	}

	if err := req.toBooking().ValidateInterval(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	return nil
}

// validateDates проверяет, что дата начала не в прошлом и не дальше
// горизонта бронирования
func validateDates(startDate, today jalali.Date) error {
	if startDate.Before(today) {
		return ErrInvalidDate
	}

	maxDate := today.AddDays(domain.MaxAdvanceBookingDays)
	if startDate.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance",
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

package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	overrideRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/override"
	"github.com/hamkade/CWS-BookingService/internal/scheduling"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// UseCase use case для получения свободных окон юнита на дату.
// Чтение без блокировок: результат - снимок на момент запроса, допуск
// все равно перепроверяется при создании бронирования.
type UseCase struct {
	bookingRepo   BookingRepository
	unitRepo      UnitRepository
	overrideRepo  OverrideRepository
	defaultWindow domain.AvailabilityWindow
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultWindow - рабочее окно по умолчанию, когда на дату нет переопределения.
func NewUseCase(
	bookingRepo BookingRepository,
	unitRepo UnitRepository,
	overrideRepo OverrideRepository,
	defaultWindow domain.AvailabilityWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		unitRepo:      unitRepo,
		overrideRepo:  overrideRepo,
		defaultWindow: defaultWindow,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения свободных окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: unit=%s, seat=%v, date=%s", req.UnitID, req.SeatID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты: не в прошлом и не дальше горизонта бронирования
	today := todayFor(uc.timeProvider)
	if err := validateDate(req.Date, today); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем юнит; неактивный юнит снаружи неотличим от отсутствующего
	unit, err := uc.unitRepo.GetByID(ctx, req.UnitID)
	if err != nil {
		if isNotFound(err) {
			uc.logger.Warn("GetAvailability: unit %s not found", req.UnitID)
			return nil, ErrUnitNotFound
		}
		uc.logger.Error("GetAvailability: failed to get unit %s: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}
	if !unit.IsActive {
		uc.logger.Warn("GetAvailability: unit %s is not active", req.UnitID)
		return nil, ErrUnitNotFound
	}

	capacity, err := uc.resolveCapacity(ctx, unit, req)
	if err != nil {
		return nil, err
	}

	// 4. Рабочее окно на дату: переопределение, иначе окно по умолчанию
	open, close, err := uc.windowFor(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Активные бронирования, пересекающие дату
	existing, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		UnitID:     req.UnitID,
		SeatID:     req.SeatID,
		From:       &req.Date,
		To:         &req.Date,
		OnlyActive: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Свободные окна разверткой занятости по рабочему окну
	free := scheduling.FreeWindows(capacity, req.Date, open, close,
		scheduling.IntervalsFromBookings(existing))

	resp := &Response{
		UnitID:          req.UnitID,
		SeatID:          req.SeatID,
		Date:            req.Date,
		OpenTime:        open,
		CloseTime:       close,
		HasAvailability: len(free) > 0,
	}

	// Юнит может скрывать границы окон: наружу уходит только сводный флаг
	if !unit.ShowAvailabilityDetails {
		resp.DetailsHidden = true
		uc.logger.Info("GetAvailability: unit %s hides details, windows=%d", req.UnitID, len(free))
		return resp, nil
	}

	resp.Windows = make([]Window, 0, len(free))
	for _, w := range free {
		resp.Windows = append(resp.Windows, Window{StartTime: w.StartTime, EndTime: w.EndTime})
	}

	uc.logger.Info("GetAvailability: unit %s date %s: %d free windows", req.UnitID, req.Date, len(free))
	return resp, nil
}

// resolveCapacity возвращает вместимость цели запроса: место всегда 1,
// юнит - его вместимость
func (uc *UseCase) resolveCapacity(ctx context.Context, unit *domain.Unit, req *Request) (int, error) {
	if req.SeatID == nil {
		return unit.Capacity, nil
	}

	seat, err := uc.unitRepo.GetSeat(ctx, *req.SeatID)
	if err != nil {
		if isNotFound(err) {
			uc.logger.Warn("GetAvailability: seat %s not found", *req.SeatID)
			return 0, ErrSeatNotFound
		}
		uc.logger.Error("GetAvailability: failed to get seat %s: %v", *req.SeatID, err)
		return 0, fmt.Errorf("%w: failed to get seat: %v", ErrInternal, err)
	}

	if seat.UnitID != unit.ID || !seat.IsActive {
		uc.logger.Warn("GetAvailability: seat %s does not belong to unit %s or is inactive",
			seat.ID, unit.ID)
		return 0, ErrSeatNotFound
	}

	return 1, nil
}

// windowFor возвращает рабочее окно юнита на дату
func (uc *UseCase) windowFor(ctx context.Context, req *Request) (open, close types.TimeString, err error) {
	override, err := uc.overrideRepo.GetByUnitAndDate(ctx, req.UnitID, req.Date)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			return uc.defaultWindow.StartTime, uc.defaultWindow.EndTime, nil
		}
		uc.logger.Error("GetAvailability: failed to get override: %v", err)
		return open, close, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: using override window %s-%s for unit %s on %s",
		override.StartTime, override.EndTime, req.UnitID, req.Date)
	return override.StartTime, override.EndTime, nil
}

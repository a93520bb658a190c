package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/internal/scheduling"
	"github.com/hamkade/CWS-BookingService/pkg/ptr"
	"github.com/hamkade/CWS-BookingService/pkg/txmanager"
)

// UseCase координатор транзакции бронирования.
//
// Проверка допуска и вставка выполняются в одной сериализуемой транзакции
// с блокировкой активных бронирований юнита (FOR UPDATE) - это закрывает
// гонку check-then-act между конкурентными запросами. Запись аудита
// создается в той же транзакции; уведомление публикуется post-commit хуком
// и не влияет на результат.
type UseCase struct {
	bookingRepo  BookingRepository
	unitRepo     UnitRepository
	auditRepo    AuditRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	unitRepo UnitRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		unitRepo:     unitRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: unit=%s, seat=%v, class=%s, dates=%s..%s",
		req.UnitID, req.SeatID, req.Class, req.StartDate, req.EndDate)

	// 1. Структурная валидация: некорректный запрос не должен дойти до БД
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты: не в прошлом и не дальше горизонта бронирования
	today := todayFor(uc.timeProvider)
	if err := validateDates(req.StartDate, today); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем юнит и определяем вместимость цели бронирования
	unit, err := uc.unitRepo.GetByID(ctx, req.UnitID)
	if err != nil {
		if isNotFound(err) {
			uc.logger.Warn("CreateBooking: unit %s not found", req.UnitID)
			return nil, ErrUnitNotFound
		}
		uc.logger.Error("CreateBooking: failed to get unit %s: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}

	capacity, err := uc.resolveTarget(ctx, unit, req)
	if err != nil {
		return nil, err
	}

	booking := req.toBooking()

	// 4. Допуск и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Активные бронирования, пересекающие запрошенный диапазон дат,
		// с блокировкой строк до конца транзакции
		existing, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			UnitID:     req.UnitID,
			SeatID:     req.SeatID,
			From:       &req.StartDate,
			To:         &req.EndDate,
			OnlyActive: true,
			ForUpdate:  true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.2. Повторная проверка допуска под изоляцией
		intervals := scheduling.IntervalsFromBookings(existing)
		if !scheduling.Admits(capacity, scheduling.FromBooking(booking), intervals) {
			uc.logger.Warn("CreateBooking: admission rejected, unit=%s capacity=%d overlapping=%d",
				req.UnitID, capacity, len(intervals))
			uc.metrics.IncAdmissionsRejected()
			return ErrSlotNotAvailable
		}

		// 4.3. Вставка бронирования и записи аудита атомарно
		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		_, err = uc.auditRepo.Create(txCtx, &domain.AuditRecord{
			BookingID: booking.ID,
			Action:    domain.AuditCreated,
			NewStatus: ptr.Ptr(booking.Status),
			Notes:     fmt.Sprintf("Booking created (%s)", booking.Class),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create audit record: %v", err)
			return fmt.Errorf("%w: failed to create audit record: %v", ErrInternal, err)
		}

		// 4.4. Уведомление строго после commit; сбой не откатывает бронирование
		txmanager.AfterCommit(txCtx, func() {
			if err := uc.notifier.BookingCreated(context.Background(), booking.ID); err != nil {
				uc.logger.Error("CreateBooking: failed to publish notification for booking %s: %v",
					booking.ID, err)
				uc.metrics.IncNotificationsPublished("error")
				return
			}
			uc.metrics.IncNotificationsPublished("ok")
		})

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict for unit %s", req.UnitID)
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("CreateBooking: successfully created booking %s", booking.ID)

	return toResponse(booking), nil
}

// resolveTarget проверяет цель бронирования (юнит или место) и возвращает
// её вместимость. Место всегда имеет вместимость 1.
func (uc *UseCase) resolveTarget(ctx context.Context, unit *domain.Unit, req *Request) (int, error) {
	if !unit.IsActive {
		uc.logger.Warn("CreateBooking: unit %s is not active", unit.ID)
		return 0, ErrUnitInactive
	}

	if !unit.AllowsClass(req.Class) {
		uc.logger.Warn("CreateBooking: class %s not allowed for unit %s", req.Class, unit.ID)
		return 0, ErrClassNotAllowed
	}

	if req.SeatID == nil {
		if unit.HasSeats() {
			uc.logger.Warn("CreateBooking: unit %s is booked per seat, no seat given", unit.ID)
			return 0, ErrSeatRequired
		}
		return unit.Capacity, nil
	}

	seat, err := uc.unitRepo.GetSeat(ctx, *req.SeatID)
	if err != nil {
		if isNotFound(err) {
			uc.logger.Warn("CreateBooking: seat %s not found", *req.SeatID)
			return 0, ErrSeatNotFound
		}
		uc.logger.Error("CreateBooking: failed to get seat %s: %v", *req.SeatID, err)
		return 0, fmt.Errorf("%w: failed to get seat: %v", ErrInternal, err)
	}

	if seat.UnitID != unit.ID || !seat.IsActive {
		uc.logger.Warn("CreateBooking: seat %s does not belong to unit %s or is inactive",
			seat.ID, unit.ID)
		return 0, ErrSeatNotFound
	}

	return 1, nil
}

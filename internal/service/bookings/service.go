package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	bookingRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/booking"
	"github.com/hamkade/CWS-BookingService/internal/service/bookings/models"
	"github.com/hamkade/CWS-BookingService/pkg/ptr"
	"github.com/hamkade/CWS-BookingService/pkg/txmanager"
)

// Service сервис чтения и отмены бронирований.
// Создание бронирования идет через usecase create_booking: там работает
// проверка допуска. Отмена вместимость не перепроверяет - она освобождает
// место, а не занимает его.
type Service struct {
	bookingRepo BookingRepository
	auditRepo   AuditRepository
	txManager   TransactionManager
	notifier    Notifier
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование. Разрешено из статусов pending и confirmed.
// Смена статуса и запись аудита атомарны; событие отмены публикуется
// только после commit.
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", bookingID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%s", bookingID)
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		previous := booking.Status
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}

		notes := "Booking cancelled"
		if req.Reason != "" {
			notes = fmt.Sprintf("Booking cancelled: %s", req.Reason)
		}

		_, err = s.auditRepo.Create(txCtx, &domain.AuditRecord{
			BookingID:      bookingID,
			Action:         domain.AuditCancelled,
			PreviousStatus: ptr.Ptr(previous),
			NewStatus:      ptr.Ptr(domain.StatusCancelled),
			ChangedBy:      req.CancelledBy,
			Notes:          notes,
		})
		if err != nil {
			return fmt.Errorf("%w: Cancel - create audit record: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		cancelled = booking

		// Событие уходит строго после commit; сбой публикации не откатывает отмену
		txmanager.AfterCommit(txCtx, func() {
			if err := s.notifier.BookingCancelled(context.Background(), bookingID); err != nil {
				s.logger.Error("Cancel: failed to publish notification for booking %s: %v", bookingID, err)
				s.metrics.IncNotificationsPublished("error")
				return
			}
			s.metrics.IncNotificationsPublished("ok")
		})

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrCannotCancel) {
			return nil, err
		}
		s.logger.Error("Cancel: transaction failed for booking id=%s: %v", bookingID, err)
		return nil, err
	}

	s.metrics.IncBookingsCancelled()
	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// GetAuditTrail получает журнал аудита бронирования в хронологическом порядке
func (s *Service) GetAuditTrail(ctx context.Context, bookingID uuid.UUID) (*models.AuditTrailResponse, error) {
	s.logger.Info("GetAuditTrail: fetching audit trail for booking id=%s", bookingID)

	// Отсутствующее бронирование отличаем от бронирования без записей
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetAuditTrail: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetAuditTrail: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetAuditTrail - repository error: %v", ErrInternal, err)
	}

	records, err := s.auditRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetAuditTrail: failed to list audit records for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetAuditTrail - list audit records: %v", ErrInternal, err)
	}

	s.logger.Info("GetAuditTrail: fetched %d records for booking id=%s", len(records), bookingID)
	return models.FromDomainAuditRecords(bookingID, records), nil
}

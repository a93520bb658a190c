package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
}

// AuditRepository интерфейс репозитория журнала аудита
type AuditRepository interface {
	Create(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*domain.AuditRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс публикации событий бронирования
type Notifier interface {
	BookingCancelled(ctx context.Context, bookingID uuid.UUID) error
}

// MetricsRecorder интерфейс доменных метрик сервиса
type MetricsRecorder interface {
	IncBookingsCancelled()
	IncNotificationsPublished(result string)
}

// NoopMetrics заглушка метрик, когда сбор метрик выключен
type NoopMetrics struct{}

func (NoopMetrics) IncBookingsCancelled()                   {}
func (NoopMetrics) IncNotificationsPublished(result string) {}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error)
	GetSeat(ctx context.Context, seatID uuid.UUID) (*domain.Seat, error)
}

// AuditRepository интерфейс репозитория журнала аудита
type AuditRepository interface {
	Create(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс публикации событий бронирования.
// Вызывается из post-commit хука: ошибки логируются и не влияют на результат.
type Notifier interface {
	BookingCreated(ctx context.Context, bookingID uuid.UUID) error
}

// MetricsRecorder интерфейс доменных метрик usecase
type MetricsRecorder interface {
	IncBookingsCreated()
	IncAdmissionsRejected()
	IncNotificationsPublished(result string)
}

// NoopMetrics заглушка метрик, когда сбор метрик выключен
type NoopMetrics struct{}

func (NoopMetrics) IncBookingsCreated()                     {}
func (NoopMetrics) IncAdmissionsRejected()                  {}
func (NoopMetrics) IncNotificationsPublished(result string) {}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Package notify публикует события бронирований в RabbitMQ.
//
// Доставка уведомлений (email и т.п.) - забота внешнего воркера, читающего
// очередь. Со стороны сервиса публикация строго fire-and-forget: она
// вызывается из post-commit хука, её сбой логируется и никогда не влияет
// на результат бронирования.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys событий
const (
	KeyBookingCreated   = "booking.created"
	KeyBookingCancelled = "booking.cancelled"
)

// Event сообщение, публикуемое в обменник
type Event struct {
	Event      string    `json:"event"`
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события в topic-обменник RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   Logger
}

// NewPublisher подключается к RabbitMQ и объявляет durable topic-обменник
func NewPublisher(url, exchange string, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// BookingCreated публикует событие создания бронирования
func (p *Publisher) BookingCreated(ctx context.Context, bookingID uuid.UUID) error {
	return p.publish(ctx, KeyBookingCreated, bookingID)
}

// BookingCancelled публикует событие отмены бронирования
func (p *Publisher) BookingCancelled(ctx context.Context, bookingID uuid.UUID) error {
	return p.publish(ctx, KeyBookingCancelled, bookingID)
}

func (p *Publisher) publish(ctx context.Context, key string, bookingID uuid.UUID) error {
	body, err := json.Marshal(Event{
		Event:      key,
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("notify: publish %s: %w", key, err)
	}

	p.logger.Info("notify: published %s for booking %s", key, bookingID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

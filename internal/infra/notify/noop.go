package notify

import (
	"context"

	"github.com/google/uuid"
)

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(ctx context.Context, bookingID uuid.UUID) error {
	return nil
}

func (NoopPublisher) BookingCancelled(ctx context.Context, bookingID uuid.UUID) error {
	return nil
}

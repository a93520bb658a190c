package get_booking_audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetAuditTrail(ctx context.Context, bookingID uuid.UUID) (*models.AuditTrailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

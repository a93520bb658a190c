package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the action recorded in an audit entry
type AuditAction string

const (
	AuditCreated   AuditAction = "created"
	AuditUpdated   AuditAction = "updated"
	AuditCancelled AuditAction = "cancelled"
)

// AuditRecord is an immutable log entry attached to a booking.
// Exactly one record with action "created" is written per admitted booking,
// in the same transaction as the booking itself.
type AuditRecord struct {
	ID             int64
	BookingID      uuid.UUID
	Action         AuditAction
	PreviousStatus *BookingStatus
	NewStatus      *BookingStatus
	ChangedBy      *string
	Timestamp      time.Time
	Notes          string
}

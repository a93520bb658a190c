package domain

import (
	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// AvailabilityWindow is a transient free sub-interval of a day.
// Computed fresh on every query, never persisted.
type AvailabilityWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// AvailabilityOverride is an explicit per-unit operating window for a single
// date. When present it replaces the configured default window.
type AvailabilityOverride struct {
	ID        int64
	UnitID    uuid.UUID
	Date      jalali.Date
	StartTime types.TimeString
	EndTime   types.TimeString
}

package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// DurationClass classifies the time granularity of a booking.
// ClassHourly is bound to a clock interval within a single day; every other
// class consumes whole days over the booking's date range.
type DurationClass string

const (
	ClassHourly  DurationClass = "hourly"
	ClassDaily   DurationClass = "daily"
	ClassWeekly  DurationClass = "weekly"
	ClassMonthly DurationClass = "monthly"
)

// IsTimeSlot returns true for the clock-bound class
func (c DurationClass) IsTimeSlot() bool {
	return c == ClassHourly
}

// IsValid returns true for a known duration class
func (c DurationClass) IsValid() bool {
	switch c {
	case ClassHourly, ClassDaily, ClassWeekly, ClassMonthly:
		return true
	}
	return false
}

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ActiveStatuses статусы, учитываемые при проверке вместимости
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

var (
	// ErrMalformedInterval возвращается при нарушении инвариантов интервала бронирования
	ErrMalformedInterval = errors.New("domain: malformed booking interval")
)

// Booking represents a reservation of a unit or a seat.
// Requester identity fields are opaque to the scheduling engine: they are
// validated upstream and only stored here.
type Booking struct {
	ID     uuid.UUID
	UnitID uuid.UUID
	SeatID *uuid.UUID // set when the unit is booked per seat

	// Requester
	FullName   string
	NationalID string
	Mobile     string
	Email      *string
	Gender     *string

	// Interval
	Class     DurationClass
	StartDate jalali.Date
	EndDate   jalali.Date
	StartTime types.TimeString // set iff Class is hourly
	EndTime   types.TimeString // set iff Class is hourly

	DurationHours *float64

	// Metadata
	ReferralSource  string
	SpecialRequests string
	Status          BookingStatus

	TermsAccepted   bool
	PrivacyAccepted bool
	NewsletterOptIn bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInterval enforces the interval invariants:
//   - hourly: start date equals end date, both times set, start strictly before end
//   - other classes: start date not after end date, no times
func (b *Booking) ValidateInterval() error {
	if !b.Class.IsValid() {
		return fmt.Errorf("%w: unknown duration class %q", ErrMalformedInterval, b.Class)
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrMalformedInterval)
	}

	if b.Class.IsTimeSlot() {
		if !b.StartDate.Equal(b.EndDate) {
			return fmt.Errorf("%w: hourly booking must start and end on the same date", ErrMalformedInterval)
		}
		if b.StartTime.IsZero() || b.EndTime.IsZero() {
			return fmt.Errorf("%w: hourly booking requires start and end times", ErrMalformedInterval)
		}
		if err := b.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedInterval, err)
		}
		if err := b.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedInterval, err)
		}
		if !b.StartTime.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: start time must be before end time", ErrMalformedInterval)
		}
		return nil
	}

	if b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrMalformedInterval)
	}
	if !b.StartTime.IsZero() || !b.EndTime.IsZero() {
		return fmt.Errorf("%w: %s booking must not carry clock times", ErrMalformedInterval, b.Class)
	}
	return nil
}

// IsActive returns true if the booking still counts against capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingsFilter фильтр выборки бронирований
type BookingsFilter struct {
	UnitID     uuid.UUID      // Обязательный параметр
	SeatID     *uuid.UUID     // Если задан - только бронирования этого места
	From       *jalali.Date   // Пересечение диапазона дат: end_date >= From
	To         *jalali.Date   // Пересечение диапазона дат: start_date <= To
	Status     *BookingStatus // Фильтр по статусу (опционально)
	OnlyActive bool           // Только pending/confirmed
	ForUpdate  bool           // Заблокировать строки (внутри транзакции допуска)
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UnitType represents the kind of bookable unit
type UnitType string

const (
	TypeHotDesk       UnitType = "hot_desk"
	TypeDedicatedDesk UnitType = "dedicated_desk"
	TypePrivateOffice UnitType = "private_office"
	TypeMeetingRoom   UnitType = "meeting_room"
)

var (
	// ErrInvalidCapacity возвращается, когда вместимость юнита меньше 1
	ErrInvalidCapacity = errors.New("domain: unit capacity must be at least 1")

	// ErrNoDurationClasses возвращается, когда юнит не допускает ни один класс бронирования
	ErrNoDurationClasses = errors.New("domain: unit must allow at least one duration class")
)

// Unit represents a capacity-bearing bookable resource (desk, table, room).
// A unit may contain seats; when seats exist, bookings attach to a seat and
// each seat is admitted as a capacity-1 unit.
type Unit struct {
	ID          uuid.UUID
	Name        string
	Type        UnitType
	Capacity    int
	Description string
	IsActive    bool

	// Rates per duration class (nil = not offered at this rate)
	HourlyRate  *float64
	DailyRate   *float64
	WeeklyRate  *float64
	MonthlyRate *float64

	// Duration classes this unit accepts
	AllowHourly  bool
	AllowDaily   bool
	AllowWeekly  bool
	AllowMonthly bool

	// When false, availability queries return only a busy/free summary
	// instead of exact window boundaries
	ShowAvailabilityDetails bool

	Seats []*Seat

	CreatedAt time.Time
}

// Validate checks unit invariants: positive capacity and a non-empty
// set of allowed duration classes
func (u *Unit) Validate() error {
	if u.Capacity < 1 {
		return ErrInvalidCapacity
	}
	if !u.AllowHourly && !u.AllowDaily && !u.AllowWeekly && !u.AllowMonthly {
		return ErrNoDurationClasses
	}
	return nil
}

// AllowsClass returns true if the unit accepts bookings of the given class
func (u *Unit) AllowsClass(class DurationClass) bool {
	switch class {
	case ClassHourly:
		return u.AllowHourly
	case ClassDaily:
		return u.AllowDaily
	case ClassWeekly:
		return u.AllowWeekly
	case ClassMonthly:
		return u.AllowMonthly
	default:
		return false
	}
}

// HasSeats returns true if the unit is booked per seat rather than as a whole
func (u *Unit) HasSeats() bool {
	return len(u.Seats) > 0
}

// Seat represents an individually bookable place inside a unit.
// A seat always has capacity 1.
type Seat struct {
	ID       uuid.UUID
	UnitID   uuid.UUID
	VisualID string // e.g. "T1-A"
	Name     string
	IsActive bool

	// Optional per-seat rate overrides; nil falls back to the unit rate
	HourlyRate  *float64
	DailyRate   *float64
	WeeklyRate  *float64
	MonthlyRate *float64
}

// EffectiveHourlyRate returns the seat rate if set, otherwise the unit rate
func (s *Seat) EffectiveHourlyRate(u *Unit) *float64 {
	if s.HourlyRate != nil {
		return s.HourlyRate
	}
	return u.HourlyRate
}

// EffectiveDailyRate returns the seat rate if set, otherwise the unit rate
func (s *Seat) EffectiveDailyRate(u *Unit) *float64 {
	if s.DailyRate != nil {
		return s.DailyRate
	}
	return u.DailyRate
}

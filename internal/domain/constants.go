package domain

// Default operating window. Used only as config defaults: the effective
// window is always passed into the availability calculator explicitly.
const (
	DefaultOpenTime  = "08:00"
	DefaultCloseTime = "23:00"
)

// Business validation constants
const (
	// MaxAdvanceBookingDays максимальный горизонт бронирования (примерно 6 месяцев)
	MaxAdvanceBookingDays = 180

	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04" // HH:MM
)

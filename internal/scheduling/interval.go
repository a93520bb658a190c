// Package scheduling содержит чистые алгоритмы движка бронирования:
// проверку конфликтов интервалов, sweep-line подсчет пиковой занятости
// и вычисление свободных окон дня. Пакет не обращается к БД и не имеет
// side effects - все данные передаются вызывающим кодом.
package scheduling

import (
	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

const minutesPerDay = 24 * 60

// Interval занимаемый бронированием интервал времени.
// Для почасового класса времена заданы и даты совпадают; остальные классы
// занимают целые дни диапазона [StartDate, EndDate].
type Interval struct {
	Class     domain.DurationClass
	StartDate jalali.Date
	EndDate   jalali.Date
	StartTime types.TimeString
	EndTime   types.TimeString
}

// FromBooking строит интервал из бронирования
func FromBooking(b *domain.Booking) Interval {
	return Interval{
		Class:     b.Class,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

// IntervalsFromBookings строит интервалы из активных бронирований,
// пропуская отмененные и завершенные
func IntervalsFromBookings(bookings []*domain.Booking) []Interval {
	result := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		result = append(result, FromBooking(b))
	}
	return result
}

// IsTimeSlot возвращает true для почасового интервала
func (iv Interval) IsTimeSlot() bool {
	return iv.Class.IsTimeSlot()
}

// DatesIntersect дешевый предфильтр: пересекаются ли диапазоны дат.
// Вызывающий код применяет его (или эквивалентный SQL-предикат) до
// обращения к Conflicts и sweep-алгоритмам.
func DatesIntersect(a, b Interval) bool {
	return !a.StartDate.After(b.EndDate) && !a.EndDate.Before(b.StartDate)
}

// span возвращает занимаемый интервал в абсолютных минутах [start, end).
// Почасовой интервал занимает свой отрезок внутри дня; остальные классы
// занимают целые сутки каждого дня диапазона.
func (iv Interval) span() (int64, int64) {
	if iv.IsTimeSlot() {
		day := iv.StartDate.DaysSinceEpoch() * minutesPerDay
		return day + int64(iv.StartTime.Minutes()), day + int64(iv.EndTime.Minutes())
	}
	return iv.StartDate.DaysSinceEpoch() * minutesPerDay,
		(iv.EndDate.DaysSinceEpoch() + 1) * minutesPerDay
}

// occupiedWithin возвращает отрезок [start, end) в абсолютных минутах,
// который интервал занимает внутри окна запроса [winStart, winEnd).
// Полнодневный интервал, пересекающийся с окном по датам, занимает окно
// целиком в пределах своих дат. Пустой отрезок означает отсутствие занятости.
func (iv Interval) occupiedWithin(winStart, winEnd int64) (int64, int64) {
	start, end := iv.span()
	if start < winStart {
		start = winStart
	}
	if end > winEnd {
		end = winEnd
	}
	return start, end
}

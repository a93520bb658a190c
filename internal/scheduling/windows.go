package scheduling

import (
	"sort"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

// FreeWindows вычисляет максимальные свободные окна дня, в которых занятость
// остается строго меньше вместимости. [open, close) - граничное окно дня
// (переопределение для юнита/даты либо дефолтные рабочие часы).
//
// Каждое бронирование обрезается до граничного окна: полнодневное занимает
// окно целиком, почасовое - свой отрезок. Sweep идет по всему окну; смежные
// свободные отрезки сливаются (дельты одного момента применяются вместе),
// окна нулевой длины отбрасываются. Без бронирований возвращается ровно
// одно окно [open, close).
//
// Результат упорядочен по возрастанию начала, окна не пересекаются.
func FreeWindows(capacity int, date jalali.Date, open, close types.TimeString, existing []Interval) []domain.AvailabilityWindow {
	openM, closeM := open.Minutes(), close.Minutes()
	if openM >= closeM {
		return []domain.AvailabilityWindow{}
	}

	events := make([]event, 0, len(existing)*2)
	for _, iv := range existing {
		start, end, ok := clipToDay(iv, date, openM, closeM)
		if !ok || start >= end {
			continue
		}
		events = append(events, event{at: int64(start), delta: +1}, event{at: int64(end), delta: -1})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].at < events[j].at
	})

	windows := make([]domain.AvailabilityWindow, 0)
	occupancy := 0
	freeStart := -1
	if capacity > 0 {
		freeStart = openM
	}

	for i := 0; i < len(events); {
		at := int(events[i].at)
		for i < len(events) && int(events[i].at) == at {
			occupancy += events[i].delta
			i++
		}

		switch {
		case occupancy >= capacity && freeStart >= 0:
			// Свободный отрезок закончился
			if at > freeStart {
				windows = append(windows, window(freeStart, at))
			}
			freeStart = -1
		case occupancy < capacity && freeStart < 0:
			// Занятость упала ниже вместимости - открываем новый отрезок
			freeStart = at
		}
	}

	if freeStart >= 0 && closeM > freeStart {
		windows = append(windows, window(freeStart, closeM))
	}

	return windows
}

// clipToDay обрезает интервал до граничного окна указанного дня.
// ok=false означает, что интервал не затрагивает этот день.
func clipToDay(iv Interval, date jalali.Date, openM, closeM int) (start, end int, ok bool) {
	if iv.IsTimeSlot() {
		if !iv.StartDate.Equal(date) {
			return 0, 0, false
		}
		start, end = iv.StartTime.Minutes(), iv.EndTime.Minutes()
		if start < openM {
			start = openM
		}
		if end > closeM {
			end = closeM
		}
		return start, end, true
	}

	if iv.StartDate.After(date) || iv.EndDate.Before(date) {
		return 0, 0, false
	}
	// Полнодневное бронирование занимает граничное окно целиком
	return openM, closeM, true
}

// window строит окно из минутных границ. Границы всегда в пределах суток,
// поэтому ошибки конвертации невозможны.
func window(startM, endM int) domain.AvailabilityWindow {
	start, _ := types.FromMinutes(startM)
	end, _ := types.FromMinutes(endM)
	return domain.AvailabilityWindow{StartTime: start, EndTime: end}
}

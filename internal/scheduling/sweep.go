package scheduling

import "sort"

// event точка изменения занятости на оси времени (в абсолютных минутах)
type event struct {
	at    int64
	delta int
}

// Admits решает, можно ли принять запрашиваемый интервал при заданной
// вместимости. existing - активные бронирования, чьи диапазоны дат
// пересекаются с запросом (выборка по диапазону - забота вызывающего кода).
//
// Алгоритм:
//  1. Релевантность через попарный оракул Conflicts: бронирования, не
//     конфликтующие с запросом (другие даты, касание границ), в развертку
//     не попадают.
//  2. Быстрый путь: если конфликтующих бронирований меньше вместимости,
//     допуск гарантирован - даже полное наложение не превысит лимит.
//  3. Иначе sweep-line по окну запроса: каждое бронирование обрезается до
//     пересечения с окном, пустые обрезки отбрасываются; на границах
//     создаются события +1/-1.
//  4. События сортируются по времени; все дельты одного момента применяются
//     до снятия пика, поэтому порядок событий в одной точке не важен.
//  5. Допуск успешен, если пик занятости строго меньше вместимости:
//     сам запрос добавит единицу и ровно достигнет лимит.
func Admits(capacity int, requested Interval, existing []Interval) bool {
	relevant := make([]Interval, 0, len(existing))
	for _, iv := range existing {
		if Conflicts(requested, iv) {
			relevant = append(relevant, iv)
		}
	}

	if len(relevant) < capacity {
		return true
	}

	winStart, winEnd := requested.span()

	events := make([]event, 0, len(relevant)*2)
	for _, iv := range relevant {
		start, end := iv.occupiedWithin(winStart, winEnd)
		if start >= end {
			continue
		}
		events = append(events, event{at: start, delta: +1}, event{at: end, delta: -1})
	}

	return peakOccupancy(events) < capacity
}

// peakOccupancy вычисляет пиковую одновременную занятость по событиям.
// Дельты с одинаковой временной меткой применяются атомарно.
func peakOccupancy(events []event) int {
	sort.Slice(events, func(i, j int) bool {
		return events[i].at < events[j].at
	})

	occupancy, peak := 0, 0
	for i := 0; i < len(events); {
		j := i
		for j < len(events) && events[j].at == events[i].at {
			occupancy += events[j].delta
			j++
		}
		if occupancy > peak {
			peak = occupancy
		}
		i = j
	}
	return peak
}

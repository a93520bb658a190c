package scheduling

// Conflicts решает, конфликтуют ли два интервала бронирования.
//
// Правила в порядке применения:
//  1. Диапазоны дат не пересекаются - конфликта нет.
//  2. Существующий интервал не почасовой - он занимает весь свой диапазон
//     дат, а даты уже пересекаются: конфликт.
//  3. Запрашиваемый интервал не почасовой - аналогично: конфликт.
//  4. Оба почасовые: конфликт только в один и тот же день при пересечении
//     полуинтервалов времени (start < other.end && end > other.start).
//     Касание границ (один заканчивается ровно когда начинается другой)
//     конфликтом не считается - это позволяет бронировать слоты впритык.
//
// Функция симметрична: Conflicts(a, b) == Conflicts(b, a).
func Conflicts(requested, existing Interval) bool {
	if !DatesIntersect(requested, existing) {
		return false
	}

	if !existing.IsTimeSlot() {
		return true
	}

	if !requested.IsTimeSlot() {
		return true
	}

	// Почасовые бронирования всегда однодневные (инвариант модели данных),
	// поэтому достаточно сравнить начальные даты
	if !requested.StartDate.Equal(existing.StartDate) {
		return false
	}

	return requested.StartTime.IsBefore(existing.EndTime) &&
		requested.EndTime.IsAfter(existing.StartTime)
}

package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkade/CWS-BookingService/internal/domain"
)

func assertWindows(t *testing.T, windows []domain.AvailabilityWindow, bounds ...string) {
	t.Helper()
	require.Len(t, windows, len(bounds)/2)
	for i, w := range windows {
		assert.Equal(t, bounds[i*2], w.StartTime.String(), "window %d start", i)
		assert.Equal(t, bounds[i*2+1], w.EndTime.String(), "window %d end", i)
	}
}

func TestFreeWindows_EmptyScheduleReturnsWholeWindow(t *testing.T) {
	d := date(t, 1404, 7, 15)

	windows := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), nil)

	assertWindows(t, windows, "08:00", "23:00")
}

func TestFreeWindows_SingleBookingSplitsDay(t *testing.T) {
	d := date(t, 1404, 7, 15)
	existing := []Interval{hourly(t, 15, "10:00", "12:00")}

	windows := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assertWindows(t, windows, "08:00", "10:00", "12:00", "23:00")
}

func TestFreeWindows_CapacityTwoIgnoresSingleBooking(t *testing.T) {
	d := date(t, 1404, 7, 15)
	existing := []Interval{hourly(t, 15, "10:00", "12:00")}

	windows := FreeWindows(2, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assertWindows(t, windows, "08:00", "23:00")
}

func TestFreeWindows_CapacityTwoSplitsOnDoubleOverlap(t *testing.T) {
	d := date(t, 1404, 7, 15)
	existing := []Interval{
		hourly(t, 15, "10:00", "13:00"),
		hourly(t, 15, "11:00", "12:00"),
	}

	windows := FreeWindows(2, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assertWindows(t, windows, "08:00", "11:00", "12:00", "23:00")
}

func TestFreeWindows_FullDayBookingLeavesNothing(t *testing.T) {
	d := date(t, 1404, 7, 15)
	existing := []Interval{daily(t, 14, 16)}

	windows := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assert.Empty(t, windows)
}

func TestFreeWindows_AdjacentBookingsMerge(t *testing.T) {
	// Смежные бронирования не порождают окно нулевой длины в 12:00
	d := date(t, 1404, 7, 15)
	existing := []Interval{
		hourly(t, 15, "10:00", "12:00"),
		hourly(t, 15, "12:00", "14:00"),
	}

	windows := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assertWindows(t, windows, "08:00", "10:00", "14:00", "23:00")
}

func TestFreeWindows_BookingAtOpenBoundary(t *testing.T) {
	d := date(t, 1404, 7, 15)
	existing := []Interval{hourly(t, 15, "08:00", "10:00")}

	windows := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assertWindows(t, windows, "10:00", "23:00")
}

func TestFreeWindows_BookingOutsideWindowClipped(t *testing.T) {
	// Бронирование частично за пределами рабочего окна учитывается
	// только внутри него
	d := date(t, 1404, 7, 15)
	existing := []Interval{hourly(t, 15, "06:00", "09:00")}

	windows := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assertWindows(t, windows, "09:00", "23:00")
}

func TestFreeWindows_OtherDaysIgnored(t *testing.T) {
	d := date(t, 1404, 7, 15)
	existing := []Interval{
		hourly(t, 14, "08:00", "23:00"),
		daily(t, 16, 18),
	}

	windows := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assertWindows(t, windows, "08:00", "23:00")
}

func TestFreeWindows_OverrideWindow(t *testing.T) {
	// Переопределенное окно 09:00-18:00 вместо дефолтного
	d := date(t, 1404, 7, 15)
	existing := []Interval{hourly(t, 15, "10:00", "12:00")}

	windows := FreeWindows(1, d, clock(t, "09:00"), clock(t, "18:00"), existing)

	assertWindows(t, windows, "09:00", "10:00", "12:00", "18:00")
}

func TestFreeWindows_DegenerateWindow(t *testing.T) {
	d := date(t, 1404, 7, 15)

	windows := FreeWindows(1, d, clock(t, "12:00"), clock(t, "12:00"), nil)

	assert.Empty(t, windows)
}

func TestFreeWindows_Idempotent(t *testing.T) {
	// Чтение не мутирует входные интервалы: повторный вызов дает тот же результат
	d := date(t, 1404, 7, 15)
	existing := []Interval{
		hourly(t, 15, "10:00", "12:00"),
		hourly(t, 15, "15:00", "16:00"),
	}

	first := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)
	second := FreeWindows(1, d, clock(t, "08:00"), clock(t, "23:00"), existing)

	assert.Equal(t, first, second)
}

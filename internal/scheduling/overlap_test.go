package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/types"
)

func date(t *testing.T, year, month, day int) jalali.Date {
	t.Helper()
	d, err := jalali.NewDate(year, month, day)
	require.NoError(t, err)
	return d
}

func clock(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func hourly(t *testing.T, day int, start, end string) Interval {
	t.Helper()
	d := date(t, 1404, 7, day)
	return Interval{
		Class:     domain.ClassHourly,
		StartDate: d,
		EndDate:   d,
		StartTime: clock(t, start),
		EndTime:   clock(t, end),
	}
}

func daily(t *testing.T, startDay, endDay int) Interval {
	t.Helper()
	return Interval{
		Class:     domain.ClassDaily,
		StartDate: date(t, 1404, 7, startDay),
		EndDate:   date(t, 1404, 7, endDay),
	}
}

func TestConflicts_HourlySameDay(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		conflict bool
	}{
		{
			name:     "overlapping intervals",
			a:        hourly(t, 15, "10:00", "12:00"),
			b:        hourly(t, 15, "11:00", "13:00"),
			conflict: true,
		},
		{
			name:     "identical intervals",
			a:        hourly(t, 15, "10:00", "12:00"),
			b:        hourly(t, 15, "10:00", "12:00"),
			conflict: true,
		},
		{
			name:     "contained interval",
			a:        hourly(t, 15, "09:00", "18:00"),
			b:        hourly(t, 15, "12:00", "13:00"),
			conflict: true,
		},
		{
			name:     "touching edges back to back",
			a:        hourly(t, 15, "10:00", "12:00"),
			b:        hourly(t, 15, "12:00", "14:00"),
			conflict: false,
		},
		{
			name:     "disjoint same day",
			a:        hourly(t, 15, "08:00", "09:00"),
			b:        hourly(t, 15, "17:00", "19:00"),
			conflict: false,
		},
		{
			name:     "same times different days",
			a:        hourly(t, 15, "10:00", "12:00"),
			b:        hourly(t, 16, "10:00", "12:00"),
			conflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, Conflicts(tt.a, tt.b))
			// Симметричность для любой пары
			assert.Equal(t, Conflicts(tt.a, tt.b), Conflicts(tt.b, tt.a))
		})
	}
}

func TestConflicts_FullDayDominance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		conflict bool
	}{
		{
			name:     "daily blocks hourly on covered date",
			a:        daily(t, 10, 12),
			b:        hourly(t, 11, "10:00", "11:00"),
			conflict: true,
		},
		{
			name:     "daily does not block hourly outside range",
			a:        daily(t, 10, 12),
			b:        hourly(t, 13, "10:00", "11:00"),
			conflict: false,
		},
		{
			name:     "overlapping daily ranges",
			a:        daily(t, 10, 15),
			b:        daily(t, 15, 20),
			conflict: true,
		},
		{
			name:     "disjoint daily ranges",
			a:        daily(t, 10, 12),
			b:        daily(t, 13, 20),
			conflict: false,
		},
		{
			name:     "single day booking on boundary",
			a:        daily(t, 12, 12),
			b:        hourly(t, 12, "22:00", "23:00"),
			conflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, Conflicts(tt.a, tt.b))
			assert.Equal(t, Conflicts(tt.a, tt.b), Conflicts(tt.b, tt.a))
		})
	}
}

func TestIntervalsFromBookings_SkipsInactive(t *testing.T) {
	d := date(t, 1404, 7, 15)

	mk := func(status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			Class:     domain.ClassDaily,
			StartDate: d,
			EndDate:   d,
			Status:    status,
		}
	}

	bookings := []*domain.Booking{
		mk(domain.StatusPending),
		mk(domain.StatusConfirmed),
		mk(domain.StatusCancelled),
		mk(domain.StatusCompleted),
	}

	intervals := IntervalsFromBookings(bookings)
	assert.Len(t, intervals, 2)
}

func TestDatesIntersect(t *testing.T) {
	assert.True(t, DatesIntersect(daily(t, 10, 12), daily(t, 12, 14)))
	assert.True(t, DatesIntersect(daily(t, 10, 20), daily(t, 12, 14)))
	assert.False(t, DatesIntersect(daily(t, 10, 12), daily(t, 13, 14)))
}

package units

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	unitRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/unit"
	"github.com/hamkade/CWS-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUnitRepo struct {
	units map[uuid.UUID]*domain.Unit
}

func (r *fakeUnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, unitRepo.ErrUnitNotFound
	}
	return u, nil
}

func (r *fakeUnitRepo) ListActive(ctx context.Context) ([]*domain.Unit, error) {
	result := make([]*domain.Unit, 0)
	for _, u := range r.units {
		if u.IsActive {
			result = append(result, u)
		}
	}
	return result, nil
}

func newUnit() *domain.Unit {
	return &domain.Unit{
		ID:          uuid.New(),
		Name:        "Hot desk zone",
		Type:        domain.TypeHotDesk,
		Capacity:    8,
		IsActive:    true,
		HourlyRate:  ptr.Ptr(50.0),
		DailyRate:   ptr.Ptr(300.0),
		AllowHourly: true,
		AllowDaily:  true,
	}
}

func TestListActive_SkipsInactiveUnits(t *testing.T) {
	active := newUnit()
	inactive := newUnit()
	inactive.IsActive = false

	repo := &fakeUnitRepo{units: map[uuid.UUID]*domain.Unit{
		active.ID:   active,
		inactive.ID: inactive,
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Units, 1)
	assert.Equal(t, active.ID, resp.Units[0].ID)
	assert.Equal(t, []string{"hourly", "daily"}, resp.Units[0].AllowedClasses)
}

func TestGetByID_SeatRatesFallBackToUnit(t *testing.T) {
	unit := newUnit()
	unit.Seats = []*domain.Seat{
		{ID: uuid.New(), UnitID: unit.ID, VisualID: "T1-A", IsActive: true},
		{ID: uuid.New(), UnitID: unit.ID, VisualID: "T1-B", IsActive: true, HourlyRate: ptr.Ptr(70.0)},
		{ID: uuid.New(), UnitID: unit.ID, VisualID: "T1-C", IsActive: false},
	}

	repo := &fakeUnitRepo{units: map[uuid.UUID]*domain.Unit{unit.ID: unit}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), unit.ID)

	require.NoError(t, err)
	// Неактивное место T1-C в ответ не попадает
	require.Len(t, resp.Seats, 2)
	assert.Equal(t, 50.0, *resp.Seats[0].HourlyRate)
	assert.Equal(t, 70.0, *resp.Seats[1].HourlyRate)
	assert.Equal(t, 300.0, *resp.Seats[1].DailyRate)
}

func TestGetByID_InactiveUnitHidden(t *testing.T) {
	unit := newUnit()
	unit.IsActive = false

	repo := &fakeUnitRepo{units: map[uuid.UUID]*domain.Unit{unit.ID: unit}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), unit.ID)

	require.ErrorIs(t, err, ErrUnitNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeUnitRepo{units: map[uuid.UUID]*domain.Unit{}}, nopLogger{})

	_, err := svc.GetByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, ErrUnitNotFound)
}

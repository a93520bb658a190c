package unit

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkade/CWS-BookingService/internal/domain"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *Repository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, NewRepository(db)
}

func unitRow(id uuid.UUID, capacity int, allowHourly bool) *sqlmock.Rows {
	return sqlmock.NewRows(unitColumns).AddRow(
		id.String(),
		"Hot desk zone",
		"hot_desk",
		capacity,
		"",
		true,
		50.0,
		300.0,
		nil,
		nil,
		allowHourly,
		true,
		false,
		false,
		true,
		time.Now(),
	)
}

func seatRow(id, unitID uuid.UUID, visualID string) []driver.Value {
	return []driver.Value{id.String(), unitID.String(), visualID, "", true, nil, nil, nil, nil}
}

func TestGetByID_Success(t *testing.T) {
	mock, repo := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM units WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(unitRow(id, 8, true))
	mock.ExpectQuery(`SELECT .+ FROM seats WHERE unit_id IN \(\$1\) AND is_active = \$2 ORDER BY visual_id ASC`).
		WithArgs(id, true).
		WillReturnRows(sqlmock.NewRows(seatColumns).
			AddRow(seatRow(uuid.New(), id, "T1-A")...).
			AddRow(seatRow(uuid.New(), id, "T1-B")...))

	u, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, domain.TypeHotDesk, u.Type)
	assert.Equal(t, 8, u.Capacity)
	require.Len(t, u.Seats, 2)
	assert.Equal(t, "T1-A", u.Seats[0].VisualID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM units`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)

	require.ErrorIs(t, err, ErrUnitNotFound)
}

func TestGetByID_InvalidRowRejected(t *testing.T) {
	mock, repo := setupMockDB(t)

	// Строка с нулевой вместимостью нарушает доменный инвариант
	// и не должна попасть в вызывающий код
	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM units`).
		WithArgs(id).
		WillReturnRows(unitRow(id, 0, true))

	_, err := repo.GetByID(context.Background(), id)

	require.ErrorIs(t, err, ErrInvalidUnitRow)
	assert.ErrorContains(t, err, "capacity")
}

func TestGetByID_NoDurationClassesRejected(t *testing.T) {
	mock, repo := setupMockDB(t)

	id := uuid.New()
	row := sqlmock.NewRows(unitColumns).AddRow(
		id.String(), "Hot desk zone", "hot_desk", 8, "", true,
		nil, nil, nil, nil,
		false, false, false, false,
		true, time.Now(),
	)
	mock.ExpectQuery(`SELECT .+ FROM units`).
		WithArgs(id).
		WillReturnRows(row)

	_, err := repo.GetByID(context.Background(), id)

	require.ErrorIs(t, err, ErrInvalidUnitRow)
}

func TestListActive_GroupsSeatsByUnit(t *testing.T) {
	mock, repo := setupMockDB(t)

	first := uuid.New()
	second := uuid.New()

	rows := sqlmock.NewRows(unitColumns)
	for _, id := range []uuid.UUID{first, second} {
		rows.AddRow(
			id.String(), "Hot desk zone", "hot_desk", 8, "", true,
			50.0, 300.0, nil, nil,
			true, true, false, false,
			true, time.Now(),
		)
	}

	mock.ExpectQuery(`SELECT .+ FROM units WHERE is_active = \$1 ORDER BY name ASC`).
		WithArgs(true).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT .+ FROM seats WHERE unit_id IN \(\$1,\$2\) AND is_active = \$3`).
		WithArgs(first, second, true).
		WillReturnRows(sqlmock.NewRows(seatColumns).
			AddRow(seatRow(uuid.New(), first, "T1-A")...).
			AddRow(seatRow(uuid.New(), second, "T2-A")...).
			AddRow(seatRow(uuid.New(), second, "T2-B")...))

	units, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Len(t, units[0].Seats, 1)
	assert.Len(t, units[1].Seats, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSeat_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM seats WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSeat(context.Background(), id)

	require.ErrorIs(t, err, ErrSeatNotFound)
}

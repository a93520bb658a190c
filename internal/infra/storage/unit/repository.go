package unit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/pkg/psqlbuilder"
	"github.com/hamkade/CWS-BookingService/pkg/txmanager"
)

var unitColumns = []string{
	"id",
	"name",
	"type",
	"capacity",
	"description",
	"is_active",
	"hourly_rate",
	"daily_rate",
	"weekly_rate",
	"monthly_rate",
	"allow_hourly",
	"allow_daily",
	"allow_weekly",
	"allow_monthly",
	"show_availability_details",
	"created_at",
}

var seatColumns = []string{
	"id",
	"unit_id",
	"visual_id",
	"name",
	"is_active",
	"hourly_rate",
	"daily_rate",
	"weekly_rate",
	"monthly_rate",
}

// Repository репозиторий для работы с юнитами и местами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория юнитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает юнит по ID вместе с его активными местами
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(unitColumns...).
		From("units").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	u, err := r.scanUnit(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan unit: %v", ErrScanRow, err)
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: GetByID - unit %s: %v", ErrInvalidUnitRow, u.ID, err)
	}

	seats, err := r.seatsForUnits(ctx, []uuid.UUID{u.ID})
	if err != nil {
		return nil, err
	}
	u.Seats = seats[u.ID]

	return u, nil
}

// ListActive получает все активные юниты вместе с активными местами
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Unit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(unitColumns...).
		From("units").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.Unit, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		u, err := r.scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("%w: ListActive - unit %s: %v", ErrInvalidUnitRow, u.ID, err)
		}
		units = append(units, u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return units, nil
	}

	seats, err := r.seatsForUnits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		u.Seats = seats[u.ID]
	}

	return units, nil
}

// GetSeat получает место по ID
func (r *Repository) GetSeat(ctx context.Context, seatID uuid.UUID) (*domain.Seat, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(seatColumns...).
		From("seats").
		Where(squirrel.Eq{"id": seatID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeat - build select query: %v", ErrBuildQuery, err)
	}

	var seat domain.Seat
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&seat.ID,
		&seat.UnitID,
		&seat.VisualID,
		&seat.Name,
		&seat.IsActive,
		&seat.HourlyRate,
		&seat.DailyRate,
		&seat.WeeklyRate,
		&seat.MonthlyRate,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeat - scan seat: %v", ErrScanRow, err)
	}

	return &seat, nil
}

// seatsForUnits получает активные места для набора юнитов, сгруппированные по unit_id
func (r *Repository) seatsForUnits(ctx context.Context, unitIDs []uuid.UUID) (map[uuid.UUID][]*domain.Seat, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(seatColumns...).
		From("seats").
		Where(squirrel.Eq{"unit_id": unitIDs}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("visual_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: seatsForUnits - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: seatsForUnits - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	seats := make(map[uuid.UUID][]*domain.Seat)
	for rows.Next() {
		var seat domain.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.UnitID,
			&seat.VisualID,
			&seat.Name,
			&seat.IsActive,
			&seat.HourlyRate,
			&seat.DailyRate,
			&seat.WeeklyRate,
			&seat.MonthlyRate,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: seatsForUnits - scan row: %v", ErrScanRow, err)
		}
		seats[seat.UnitID] = append(seats[seat.UnitID], &seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: seatsForUnits - rows error: %v", ErrScanRow, err)
	}

	return seats, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanUnit(row rowScanner) (*domain.Unit, error) {
	var u domain.Unit
	var createdAt sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Type,
		&u.Capacity,
		&u.Description,
		&u.IsActive,
		&u.HourlyRate,
		&u.DailyRate,
		&u.WeeklyRate,
		&u.MonthlyRate,
		&u.AllowHourly,
		&u.AllowDaily,
		&u.AllowWeekly,
		&u.AllowMonthly,
		&u.ShowAvailabilityDetails,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt = createdAt.Time
	return &u, nil
}

package override

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/psqlbuilder"
	"github.com/hamkade/CWS-BookingService/pkg/txmanager"
)

// Переиспользуем интерфейс executor из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий переопределений рабочего окна юнита на дату
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUnitAndDate получает переопределение окна для юнита на дату.
// Если переопределения нет, возвращает ErrOverrideNotFound - вызывающий код
// использует дефолтное рабочее окно из конфигурации.
func (r *Repository) GetByUnitAndDate(ctx context.Context, unitID uuid.UUID, date jalali.Date) (*domain.AvailabilityOverride, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"unit_id",
		"date",
		"start_time",
		"end_time",
	).
		From("availability_overrides").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnitAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.AvailabilityOverride
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.UnitID,
		&o.Date,
		&o.StartTime,
		&o.EndTime,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnitAndDate - scan override: %v", ErrScanRow, err)
	}

	return &o, nil
}

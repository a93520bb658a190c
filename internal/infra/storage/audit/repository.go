package audit

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

// Переиспользуем интерфейс executor из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий журнала аудита.
// Записи аудита неизменяемы: только вставка и чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись аудита. Вызывается в одной транзакции с изменением
// бронирования: ровно одна запись "created" на каждое принятое бронирование.
func (r *Repository) Create(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_log").
		Columns(
			"booking_id",
			"action",
			"previous_status",
			"new_status",
			"changed_by",
			"notes",
		).
		Values(
			rec.BookingID,
			rec.Action,
			rec.PreviousStatus,
			rec.NewStatus,
			rec.ChangedBy,
			rec.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rec.Timestamp = createdAt.Time
	return rec, nil
}

// ListByBooking получает записи аудита бронирования в хронологическом порядке
func (r *Repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*domain.AuditRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"action",
		"previous_status",
		"new_status",
		"changed_by",
		"notes",
		"created_at",
	).
		From("audit_log").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.AuditRecord, 0)
	for rows.Next() {
		var rec domain.AuditRecord
		var createdAt sql.NullTime

		err := rows.Scan(
			&rec.ID,
			&rec.BookingID,
			&rec.Action,
			&rec.PreviousStatus,
			&rec.NewStatus,
			&rec.ChangedBy,
			&rec.Notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}

		rec.Timestamp = createdAt.Time
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

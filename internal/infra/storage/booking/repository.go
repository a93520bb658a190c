package booking

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

var bookingColumns = []string{
	"id",
	"unit_id",
	"seat_id",
	"full_name",
	"national_id",
	"mobile",
	"email",
	"gender",
	"booking_type",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"duration_hours",
	"referral_source",
	"special_requests",
	"status",
	"terms_accepted",
	"privacy_accepted",
	"newsletter_opt_in",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование. ID генерируется вызывающим кодом.
// Внутри транзакции допуска вызывается после проверки вместимости.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"unit_id",
			"seat_id",
			"full_name",
			"national_id",
			"mobile",
			"email",
			"gender",
			"booking_type",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"duration_hours",
			"referral_source",
			"special_requests",
			"status",
			"terms_accepted",
			"privacy_accepted",
			"newsletter_opt_in",
		).
		Values(
			b.ID,
			b.UnitID,
			b.SeatID,
			b.FullName,
			b.NationalID,
			b.Mobile,
			b.Email,
			b.Gender,
			b.Class,
			b.StartDate,
			b.EndDate,
			b.StartTime,
			b.EndTime,
			b.DurationHours,
			b.ReferralSource,
			b.SpecialRequests,
			b.Status,
			b.TermsAccepted,
			b.PrivacyAccepted,
			b.NewsletterOptIn,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetWithFilter получает бронирования юнита с фильтрацией.
//
// Диапазон дат трактуется как предикат пересечения: выбираются бронирования,
// чей [start_date, end_date] пересекается с [From, To]. Это дешевый
// предфильтр для оракула конфликтов и sweep-алгоритма.
//
// ForUpdate добавляет блокировку строк и допустим только внутри транзакции -
// так транзакция допуска закрывает гонку между проверкой и вставкой.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"unit_id": filter.UnitID})

	if filter.SeatID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"seat_id": *filter.SeatID})
	}

	// Пересечение диапазонов дат: start_date <= To AND end_date >= From
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": *filter.From})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyActive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC, start_time ASC NULLS FIRST")

	if filter.ForUpdate && txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UnitID,
		&b.SeatID,
		&b.FullName,
		&b.NationalID,
		&b.Mobile,
		&b.Email,
		&b.Gender,
		&b.Class,
		&b.StartDate,
		&b.EndDate,
		&b.StartTime,
		&b.EndTime,
		&b.DurationHours,
		&b.ReferralSource,
		&b.SpecialRequests,
		&b.Status,
		&b.TermsAccepted,
		&b.PrivacyAccepted,
		&b.NewsletterOptIn,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

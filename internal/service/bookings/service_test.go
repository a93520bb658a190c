package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkade/CWS-BookingService/internal/domain"
	bookingRepo "github.com/hamkade/CWS-BookingService/internal/infra/storage/booking"
	"github.com/hamkade/CWS-BookingService/internal/service/bookings/models"
	"github.com/hamkade/CWS-BookingService/pkg/jalali"
	"github.com/hamkade/CWS-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeAuditRepo struct {
	records []*domain.AuditRecord
}

func (r *fakeAuditRepo) Create(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
	created := *rec
	created.ID = int64(len(r.records) + 1)
	created.Timestamp = time.Now()
	r.records = append(r.records, &created)
	return &created, nil
}

func (r *fakeAuditRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*domain.AuditRecord, error) {
	result := make([]*domain.AuditRecord, 0)
	for _, rec := range r.records {
		if rec.BookingID == bookingID {
			result = append(result, rec)
		}
	}
	return result, nil
}

// fakeTxManager выполняет fn без транзакции: AfterCommit в этом
// случае срабатывает сразу, что достаточно для проверки публикации
type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type fakeNotifier struct {
	cancelled []uuid.UUID
	err       error
}

func (n *fakeNotifier) BookingCancelled(ctx context.Context, bookingID uuid.UUID) error {
	n.cancelled = append(n.cancelled, bookingID)
	return n.err
}

type fakeMetrics struct {
	cancelled int
	published map[string]int
}

func (m *fakeMetrics) IncBookingsCancelled() { m.cancelled++ }

func (m *fakeMetrics) IncNotificationsPublished(result string) {
	if m.published == nil {
		m.published = make(map[string]int)
	}
	m.published[result]++
}

type fixture struct {
	svc      *Service
	store    *fakeBookingRepo
	audit    *fakeAuditRepo
	notifier *fakeNotifier
	metrics  *fakeMetrics
	booking  *domain.Booking
}

func newFixture(t *testing.T, status domain.BookingStatus) *fixture {
	t.Helper()

	date := jalali.Today().AddDays(5)
	booking := &domain.Booking{
		ID:        uuid.New(),
		UnitID:    uuid.New(),
		FullName:  "Sara Ahmadi",
		Mobile:    "09121234567",
		Class:     domain.ClassDaily,
		StartDate: date,
		EndDate:   date,
		Status:    status,
	}

	store := &fakeBookingRepo{bookings: map[uuid.UUID]*domain.Booking{booking.ID: booking}}
	audit := &fakeAuditRepo{}
	notifier := &fakeNotifier{}
	metrics := &fakeMetrics{}

	svc := NewService(store, audit, &fakeTxManager{}, notifier, metrics, nopLogger{})

	return &fixture{
		svc:      svc,
		store:    store,
		audit:    audit,
		notifier: notifier,
		metrics:  metrics,
		booking:  booking,
	}
}

func TestGetByID_ReturnsBooking(t *testing.T) {
	f := newFixture(t, domain.StatusPending)

	resp, err := f.svc.GetByID(context.Background(), f.booking.ID)

	require.NoError(t, err)
	assert.Equal(t, f.booking.ID, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, f.booking.StartDate.String(), resp.StartDate)
	// Для суточного бронирования времена не возвращаются
	assert.Empty(t, resp.StartTime)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t, domain.StatusPending)

	_, err := f.svc.GetByID(context.Background(), uuid.New())

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_HappyPath(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed)

	resp, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{
		Reason:      "plans changed",
		CancelledBy: ptr.Ptr("operator-7"),
	})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, domain.StatusCancelled, f.store.bookings[f.booking.ID].Status)

	require.Len(t, f.audit.records, 1)
	rec := f.audit.records[0]
	assert.Equal(t, domain.AuditCancelled, rec.Action)
	assert.Equal(t, domain.StatusConfirmed, *rec.PreviousStatus)
	assert.Equal(t, domain.StatusCancelled, *rec.NewStatus)
	assert.Equal(t, "operator-7", *rec.ChangedBy)
	assert.Equal(t, "Booking cancelled: plans changed", rec.Notes)

	assert.Equal(t, []uuid.UUID{f.booking.ID}, f.notifier.cancelled)
	assert.Equal(t, 1, f.metrics.cancelled)
	assert.Equal(t, 1, f.metrics.published["ok"])
}

func TestCancel_WithoutReason(t *testing.T) {
	f := newFixture(t, domain.StatusPending)

	_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})

	require.NoError(t, err)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, "Booking cancelled", f.audit.records[0].Notes)
	assert.Nil(t, f.audit.records[0].ChangedBy)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture(t, domain.StatusCancelled)

	_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})

	require.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, f.audit.records)
	assert.Empty(t, f.notifier.cancelled)
	assert.Zero(t, f.metrics.cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t, domain.StatusPending)

	_, err := f.svc.Cancel(context.Background(), uuid.New(), &models.CancelBookingRequest{})

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	f := newFixture(t, domain.StatusPending)

	_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{
		Reason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, domain.StatusPending, f.store.bookings[f.booking.ID].Status)
}

func TestCancel_NotificationFailureDoesNotFailCancellation(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed)
	f.notifier.err = errors.New("broker down")

	resp, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 1, f.metrics.cancelled)
	// Сбой публикации учитывается в метриках и не влияет на результат
	assert.Equal(t, 1, f.metrics.published["error"])
}

func TestCancel_TransactionFailurePropagated(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed)
	f.svc.txManager = &fakeTxManager{err: errors.New("serialization failure")}

	_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})

	require.Error(t, err)
	assert.Zero(t, f.metrics.cancelled)
	assert.Empty(t, f.notifier.cancelled)
}

func TestGetAuditTrail_ReturnsRecordsInOrder(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed)

	_, err := f.audit.Create(context.Background(), &domain.AuditRecord{
		BookingID: f.booking.ID,
		Action:    domain.AuditCreated,
		NewStatus: ptr.Ptr(domain.StatusPending),
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{})
	require.NoError(t, err)

	trail, err := f.svc.GetAuditTrail(context.Background(), f.booking.ID)

	require.NoError(t, err)
	assert.Equal(t, f.booking.ID, trail.BookingID)
	require.Len(t, trail.Records, 2)
	assert.Equal(t, string(domain.AuditCreated), trail.Records[0].Action)
	assert.Equal(t, string(domain.AuditCancelled), trail.Records[1].Action)
}

func TestGetAuditTrail_EmptyForExistingBooking(t *testing.T) {
	f := newFixture(t, domain.StatusPending)

	trail, err := f.svc.GetAuditTrail(context.Background(), f.booking.ID)

	require.NoError(t, err)
	assert.Empty(t, trail.Records)
}

func TestGetAuditTrail_BookingNotFound(t *testing.T) {
	f := newFixture(t, domain.StatusPending)

	_, err := f.svc.GetAuditTrail(context.Background(), uuid.New())

	require.ErrorIs(t, err, ErrBookingNotFound)
}

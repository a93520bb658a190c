package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeMetrics struct {
	retries int
}

func (m *fakeMetrics) IncTxRetries() { m.retries++ }

func setup(t *testing.T) (*TransactionManager, sqlmock.Sqlmock, *fakeMetrics) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	metrics := &fakeMetrics{}
	return NewTransactionManager(db, metrics, nopLogger{}), mock, metrics
}

func TestDoSerializable_CommitRunsHooks(t *testing.T) {
	m, mock, _ := setup(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var order []string
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		require.True(t, IsInTransaction(ctx))
		AfterCommit(ctx, func() { order = append(order, "hook") })
		order = append(order, "fn")
		return nil
	})

	require.NoError(t, err)
	// Хук выполняется после тела транзакции, не в момент регистрации
	assert.Equal(t, []string{"fn", "hook"}, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_ErrorRollsBackAndSkipsHooks(t *testing.T) {
	m, mock, _ := setup(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	hookRan := false
	wantErr := errors.New("business error")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func() { hookRan = true })
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.False(t, hookRan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	m, mock, metrics := setup(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	// Каждый повтор учитывается в метриках
	assert.Equal(t, 1, metrics.retries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesOnDeadlock(t *testing.T) {
	m, mock, _ := setup(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: "40P01"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_ExhaustedRetries(t *testing.T) {
	m, mock, _ := setup(t)
	for i := 0; i <= DefaultMaxRetries; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pq.Error{Code: "40001"}
	})

	require.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, DefaultMaxRetries+1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_ExhaustedRetriesCountedInMetrics(t *testing.T) {
	m, mock, metrics := setup(t)
	for i := 0; i <= DefaultMaxRetries; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return &pq.Error{Code: "40001"}
	})

	require.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, DefaultMaxRetries, metrics.retries)
}

func TestDoSerializable_NonRetryableErrorNotRetried(t *testing.T) {
	m, mock, _ := setup(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	wantErr := &pq.Error{Code: "23505"} // unique_violation
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_NoRetriesNoMetrics(t *testing.T) {
	m, mock, metrics := setup(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, metrics.retries)
}

func TestDoSerializable_HookPanicRecovered(t *testing.T) {
	m, mock, _ := setup(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var secondRan bool
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func() { panic("boom") })
		AfterCommit(ctx, func() { secondRan = true })
		return nil
	})

	require.NoError(t, err)
	// Паника первого хука не мешает второму
	assert.True(t, secondRan)
}

func TestAfterCommit_OutsideTransactionRunsImmediately(t *testing.T) {
	ran := false
	AfterCommit(context.Background(), func() { ran = true })
	assert.True(t, ran)
}

func TestGetExecutor_FallbackOutsideTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DBExecutor(db), GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))
}

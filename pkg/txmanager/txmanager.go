// Package txmanager управляет сериализуемыми транзакциями и post-commit хуками.
//
// Транзакция передается через context: репозитории получают executor через
// GetExecutor и автоматически работают внутри активной транзакции.
// Хуки, зарегистрированные через AfterCommit, выполняются строго после
// успешного commit; их ошибки и паники логируются и никогда не откатывают
// транзакцию и не влияют на результат вызова.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrSerializationFailure возвращается, когда конкурирующая транзакция
	// привела к аборту и лимит повторов исчерпан. Вызывающий может повторить запрос.
	ErrSerializationFailure = errors.New("txmanager: serialization failure, retry the request")

	// ErrTransaction возвращается при ошибках begin/commit
	ErrTransaction = errors.New("txmanager: transaction error")
)

// DefaultMaxRetries количество повторов транзакции при serialization failure
const DefaultMaxRetries = 3

// DBExecutor общий интерфейс выполнения запросов (*sql.DB, *sql.Tx)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type ctxKey int

const (
	txKey ctxKey = iota
	hooksKey
)

// WithTx возвращает контекст с активной транзакцией
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return ok && tx != nil
}

// AfterCommit регистрирует хук, который выполнится после успешного commit.
// Вне транзакции хук выполняется немедленно.
func AfterCommit(ctx context.Context, hook func()) {
	hooks, ok := ctx.Value(hooksKey).(*[]func())
	if !ok {
		hook()
		return
	}
	*hooks = append(*hooks, hook)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс метрик менеджера транзакций
type MetricsRecorder interface {
	IncTxRetries()
}

// NoopMetrics заглушка метрик, когда сбор метрик выключен
type NoopMetrics struct{}

func (NoopMetrics) IncTxRetries() {}

// TransactionManager выполняет функции в сериализуемых транзакциях
type TransactionManager struct {
	db         *sql.DB
	metrics    MetricsRecorder
	logger     Logger
	maxRetries int
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *sql.DB, metrics MetricsRecorder, logger Logger) *TransactionManager {
	return &TransactionManager{
		db:         db,
		metrics:    metrics,
		logger:     logger,
		maxRetries: DefaultMaxRetries,
	}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции SERIALIZABLE.
// При serialization failure (SQLSTATE 40001) или deadlock (40P01) транзакция
// повторяется до maxRetries раз, затем возвращается ErrSerializationFailure.
// Ошибка fn откатывает транзакцию и возвращается как есть.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			m.metrics.IncTxRetries()
			m.logger.Warn("txmanager: retrying serializable transaction, attempt %d/%d", attempt, m.maxRetries)
		}

		done, err := m.runOnce(ctx, fn)
		if done {
			return err
		}
		lastErr = err
	}

	m.logger.Error("txmanager: transaction aborted after %d retries: %v", m.maxRetries, lastErr)
	return fmt.Errorf("%w: %v", ErrSerializationFailure, lastErr)
}

// runOnce выполняет одну попытку. Второе возвращаемое значение - финальная
// ошибка; done=false означает, что попытку можно повторить.
func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (done bool, err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return true, fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	hooks := make([]func(), 0, 1)
	txCtx := context.WithValue(WithTx(ctx, tx), hooksKey, &hooks)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			m.logger.Error("txmanager: rollback failed: %v", rbErr)
		}
		if isRetryable(err) {
			return false, err
		}
		return true, err
	}

	if err := tx.Commit(); err != nil {
		if isRetryable(err) {
			return false, err
		}
		return true, fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	m.runHooks(hooks)
	return true, nil
}

// runHooks выполняет post-commit хуки. Паника в хуке логируется и подавляется:
// бронирование уже зафиксировано, сбой side-effect не должен влиять на результат.
func (m *TransactionManager) runHooks(hooks []func()) {
	for _, hook := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("txmanager: panic in after-commit hook: %v", r)
				}
			}()
			hook()
		}()
	}
}

// isRetryable возвращает true для ошибок, при которых транзакцию стоит повторить
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 40001 - serialization_failure, 40P01 - deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс для выполнения запросов
// Реализуется *sql.DB, *sql.Tx, *DB и *SqlTxWrapper
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция, через которую можно выполнять запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// TxBeginner умеет открывать транзакции
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext достает транзакцию из контекста
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}

// SqlDB адаптирует *sql.DB к TxBeginner
type SqlDB struct {
	*sql.DB
}

// NewSqlDB оборачивает *sql.DB без сбора метрик
func NewSqlDB(db *sql.DB) *SqlDB {
	return &SqlDB{DB: db}
}

// BeginTx открывает транзакцию
func (d *SqlDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{tx: tx}, nil
}

// SqlTxWrapper обертка над *sql.Tx с опциональным сбором метрик
type SqlTxWrapper struct {
	tx       *sql.Tx
	recorder *recorder
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	done := w.recorder.start("exec")
	res, err := w.tx.ExecContext(ctx, query, args...)
	done(err)
	return res, err
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	done := w.recorder.start("query")
	rows, err := w.tx.QueryContext(ctx, query, args...)
	done(err)
	return rows, err
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	done := w.recorder.start("query_row")
	row := w.tx.QueryRowContext(ctx, query, args...)
	done(row.Err())
	return row
}

func (w *SqlTxWrapper) Commit() error {
	done := w.recorder.start("commit")
	err := w.tx.Commit()
	done(err)
	return err
}

func (w *SqlTxWrapper) Rollback() error {
	return w.tx.Rollback()
}

package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

const defaultPoolStatsInterval = 15 * time.Second

// DB обертка над *sql.DB, собирающая метрики запросов и пула соединений
type DB struct {
	db       *sql.DB
	recorder *recorder
}

// Wrap оборачивает соединение и запускает сбор метрик пула с указанным интервалом
// Сбор останавливается при закрытии stopCh
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{
		db:       db,
		recorder: &recorder{metrics: m},
	}

	go wrapped.collectPoolStats(serviceName, interval, stopCh)

	return wrapped
}

// WrapWithDefault оборачивает соединение с интервалом сбора по умолчанию
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	return Wrap(db, m, serviceName, defaultPoolStatsInterval, stopCh)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	done := d.recorder.start("exec")
	res, err := d.db.ExecContext(ctx, query, args...)
	done(err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	done := d.recorder.start("query")
	rows, err := d.db.QueryContext(ctx, query, args...)
	done(err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	done := d.recorder.start("query_row")
	row := d.db.QueryRowContext(ctx, query, args...)
	done(row.Err())
	return row
}

// BeginTx открывает транзакцию, запросы которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	done := d.recorder.start("begin")
	tx, err := d.db.BeginTx(ctx, opts)
	done(err)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{tx: tx, recorder: d.recorder}, nil
}

func (d *DB) collectPoolStats(serviceName string, interval time.Duration, stopCh <-chan struct{}) {
	if d.recorder.metrics == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordPoolStats(serviceName)

		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}

func (d *DB) recordPoolStats(serviceName string) {
	stats := d.db.Stats()
	m := d.recorder.metrics

	m.DBOpenConnections.WithLabelValues(serviceName).Set(float64(stats.OpenConnections))
	m.DBInUseConnections.WithLabelValues(serviceName).Set(float64(stats.InUse))
	m.DBIdleConnections.WithLabelValues(serviceName).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(serviceName).Set(float64(stats.WaitCount))
}

// recorder пишет длительность и ошибки запросов, nil-безопасен
type recorder struct {
	metrics *metrics.Metrics
}

func (r *recorder) start(operation string) func(err error) {
	if r == nil || r.metrics == nil {
		return func(error) {}
	}

	startedAt := time.Now()
	return func(err error) {
		r.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(startedAt).Seconds())
		if err != nil && err != sql.ErrNoRows {
			r.metrics.DBQueryErrors.WithLabelValues(operation).Inc()
		}
	}
}

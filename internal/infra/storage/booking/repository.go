package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"renter_id",
	"space_id",
	"start_time",
	"end_time",
	"original_end_time",
	"total_price",
	"extension_price",
	"extended_count",
	"status",
	"issue_type",
	"issue_description",
	"issue_reported_at",
	"refund_amount",
	"cancelled_at",
	"checked_in_at",
	"checked_out_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет новое бронирование
// ID генерируется, если не задан. created_at и updated_at выставляет БД
func (r *Repository) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	b := booking.Clone()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"renter_id",
			"space_id",
			"start_time",
			"end_time",
			"original_end_time",
			"total_price",
			"extension_price",
			"extended_count",
			"status",
			"issue_type",
			"issue_description",
			"issue_reported_at",
			"refund_amount",
			"cancelled_at",
			"checked_in_at",
			"checked_out_at",
		).
		Values(
			b.ID,
			b.RenterID,
			b.SpaceID,
			b.StartTime,
			b.EndTime,
			b.OriginalEndTime,
			b.TotalPrice,
			b.ExtensionPrice,
			b.ExtendedCount,
			b.Status,
			b.IssueType,
			b.IssueDescription,
			b.IssueReportedAt,
			b.RefundAmount,
			b.CancelledAt,
			b.CheckedInAt,
			b.CheckedOutAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListByRenter бронирования арендатора, новые сначала
// Опционально фильтрует по статусу
func (r *Repository) ListByRenter(ctx context.Context, renterID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"renter_id": renterID}).
		OrderBy("start_time DESC", "id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "ListByRenter", selectBuilder)
}

// ListBySpace бронирования места, новые сначала
// Опционально фильтрует по статусу
func (r *Repository) ListBySpace(ctx context.Context, spaceID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("start_time DESC", "id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "ListBySpace", selectBuilder)
}

// ListOverlapping активные бронирования места, пересекающие окно [start, end)
// excludeID исключает продлеваемое бронирование. Внутри транзакции найденные строки блокируются
func (r *Repository) ListOverlapping(ctx context.Context, spaceID string, start, end time.Time, excludeID string) ([]*domain.Booking, error) {
	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != "" {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListOverlapping", selectBuilder)
}

// Update применяет частичное обновление и возвращает бронирование целиком
// updated_at обновляется всегда, даже для пустого патча
func (r *Repository) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
	}
	if patch.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *patch.EndTime)
	}
	if patch.OriginalEndTime != nil {
		updateBuilder = updateBuilder.Set("original_end_time", *patch.OriginalEndTime)
	}
	if patch.TotalPrice != nil {
		updateBuilder = updateBuilder.Set("total_price", *patch.TotalPrice)
	}
	if patch.ExtensionPrice != nil {
		updateBuilder = updateBuilder.Set("extension_price", *patch.ExtensionPrice)
	}
	if patch.ExtendedCount != nil {
		updateBuilder = updateBuilder.Set("extended_count", *patch.ExtendedCount)
	}
	if patch.IssueType != nil {
		updateBuilder = updateBuilder.Set("issue_type", *patch.IssueType)
	}
	if patch.IssueDescription != nil {
		updateBuilder = updateBuilder.Set("issue_description", *patch.IssueDescription)
	}
	if patch.IssueReportedAt != nil {
		updateBuilder = updateBuilder.Set("issue_reported_at", *patch.IssueReportedAt)
	}
	if patch.RefundAmount != nil {
		updateBuilder = updateBuilder.Set("refund_amount", *patch.RefundAmount)
	}
	if patch.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *patch.CancelledAt)
	}
	if patch.CheckedInAt != nil {
		updateBuilder = updateBuilder.Set("checked_in_at", *patch.CheckedInAt)
	}
	if patch.CheckedOutAt != nil {
		updateBuilder = updateBuilder.Set("checked_out_at", *patch.CheckedOutAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking порядок полей совпадает с columns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking

	err := row.Scan(
		&b.ID,
		&b.RenterID,
		&b.SpaceID,
		&b.StartTime,
		&b.EndTime,
		&b.OriginalEndTime,
		&b.TotalPrice,
		&b.ExtensionPrice,
		&b.ExtendedCount,
		&b.Status,
		&b.IssueType,
		&b.IssueDescription,
		&b.IssueReportedAt,
		&b.RefundAmount,
		&b.CancelledAt,
		&b.CheckedInAt,
		&b.CheckedOutAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const table = "cancellation_policies"

var columns = []string{
	"id",
	"host_id",
	"space_id",
	"free_cancellation_hours",
	"late_cancellation_fee_percent",
	"created_at",
	"updated_at",
}

// Repository репозиторий политик отмены в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик отмены
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByHostAndSpace получает политику ровно для пары (host, space)
// spaceID == nil ищет общую политику хоста
func (r *Repository) GetByHostAndSpace(ctx context.Context, hostID string, spaceID *string) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"host_id": hostID})

	// Фильтрация по space_id (NULL или конкретное значение)
	if spaceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"space_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"space_id": *spaceID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostAndSpace - build select query: %w", ErrBuildQuery, err)
	}

	policy, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHostAndSpace - scan policy: %w", ErrScanRow, err)
	}

	return policy, nil
}

// GetWithHierarchy получает политику с учетом иерархии:
// 1. Политика конкретного места (hostID, spaceID)
// 2. Общая политика хоста (hostID, NULL)
//
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, hostID, spaceID string) (*domain.CancellationPolicy, error) {
	policy, err := r.GetByHostAndSpace(ctx, hostID, &spaceID)
	if err == nil {
		return policy, nil
	}
	if !errors.Is(err, ErrPolicyNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (space): %w", ErrExecQuery, err)
	}

	policy, err = r.GetByHostAndSpace(ctx, hostID, nil)
	if err == nil {
		return policy, nil
	}
	if !errors.Is(err, ErrPolicyNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (host): %w", ErrExecQuery, err)
	}

	return nil, ErrPolicyNotFound
}

// ListByHost все политики хоста, общая политика первой
func (r *Repository) ListByHost(ctx context.Context, hostID string) ([]*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"host_id": hostID}).
		OrderBy("space_id ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByHost - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByHost - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	policies := make([]*domain.CancellationPolicy, 0)
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByHost - scan row: %w", ErrScanRow, err)
		}
		policies = append(policies, policy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByHost - rows error: %w", ErrScanRow, err)
	}

	return policies, nil
}

// Upsert создает политику или обновляет существующую для той же пары (host, space)
// Вызывается внутри транзакции, чтобы чтение и запись не разошлись
func (r *Repository) Upsert(ctx context.Context, policy *domain.CancellationPolicy) (*domain.CancellationPolicy, error) {
	existing, err := r.GetByHostAndSpace(ctx, policy.HostID, policy.SpaceID)
	if err != nil && !errors.Is(err, ErrPolicyNotFound) {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var (
		query string
		args  []interface{}
	)
	if existing != nil {
		query, args, err = psqlbuilder.Update(table).
			Set("free_cancellation_hours", policy.FreeCancellationHours).
			Set("late_cancellation_fee_percent", policy.LateCancellationFeePercent).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": existing.ID}).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
	} else {
		query, args, err = psqlbuilder.Insert(table).
			Columns("host_id", "space_id", "free_cancellation_hours", "late_cancellation_fee_percent").
			Values(policy.HostID, policy.SpaceID, policy.FreeCancellationHours, policy.LateCancellationFeePercent).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build query: %w", ErrBuildQuery, err)
	}

	result := *policy
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute: %w", ErrExecQuery, err)
	}

	return &result, nil
}

// Delete удаляет политику пары (host, space), spaceID == nil удаляет общую политику хоста
func (r *Repository) Delete(ctx context.Context, hostID string, spaceID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"host_id": hostID})

	if spaceID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"space_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"space_id": *spaceID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.CancellationPolicy, error) {
	var p domain.CancellationPolicy
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.HostID,
		&p.SpaceID,
		&p.FreeCancellationHours,
		&p.LateCancellationFeePercent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

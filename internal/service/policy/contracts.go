package policy

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик отмены
type PolicyRepository interface {
	GetByHostAndSpace(ctx context.Context, hostID string, spaceID *string) (*domain.CancellationPolicy, error)
	GetWithHierarchy(ctx context.Context, hostID, spaceID string) (*domain.CancellationPolicy, error)
	ListByHost(ctx context.Context, hostID string) ([]*domain.CancellationPolicy, error)
	Upsert(ctx context.Context, policy *domain.CancellationPolicy) (*domain.CancellationPolicy, error)
	Delete(ctx context.Context, hostID string, spaceID *string) error
}

// ListingClient интерфейс клиента ListingService
type ListingClient interface {
	GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

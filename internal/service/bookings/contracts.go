package bookings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListBySpace(ctx context.Context, spaceID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListOverlapping(ctx context.Context, spaceID string, start, end time.Time, excludeID string) ([]*domain.Booking, error)
	Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error)
}

// ListingClient интерфейс клиента ListingService
type ListingClient interface {
	GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error)
}

// PolicyProvider источник действующей политики отмены
type PolicyProvider interface {
	GetEffective(ctx context.Context, hostID, spaceID string) (*domain.CancellationPolicy, error)
}

// EventPublisher публикация событий жизненного цикла
type EventPublisher interface {
	BookingStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus, changedBy string)
	BookingCancelled(ctx context.Context, b *domain.Booking, cancelledBy string)
	BookingExtended(ctx context.Context, b *domain.Booking, previousEnd time.Time, additionalHours int, cost decimal.Decimal)
	BookingIssueReported(ctx context.Context, b *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// KeyLocker блокировки по ключу внутри процесса
type KeyLocker interface {
	LockAll(keys ...string) (unlock func())
}

// CommandObserver учет выполненных команд в метриках
type CommandObserver interface {
	ObserveBookingCommand(command string, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

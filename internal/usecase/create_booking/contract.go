package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListOverlapping(ctx context.Context, spaceID string, start, end time.Time, excludeID string) ([]*domain.Booking, error)
}

// ListingClient интерфейс клиента ListingService
type ListingClient interface {
	GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error)
}

// EventPublisher публикация события о новом бронировании
type EventPublisher interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
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

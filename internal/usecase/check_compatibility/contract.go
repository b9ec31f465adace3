package check_compatibility

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ListingClient интерфейс клиента ListingService
type ListingClient interface {
	GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error)
}

// ProfileClient интерфейс клиента ProfileService
type ProfileClient interface {
	GetVehicle(ctx context.Context, userID, vehicleID string) (*domain.Vehicle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

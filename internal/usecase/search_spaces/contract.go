package search_spaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ListingClient интерфейс клиента ListingService
type ListingClient interface {
	// SearchSpaces возвращает кандидатов с расстоянием от точки поиска, если она задана
	SearchSpaces(ctx context.Context, lat, lng *decimal.Decimal) ([]*domain.ParkingSpace, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

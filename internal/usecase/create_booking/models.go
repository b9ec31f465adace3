package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	RenterID  string    // ID арендатора (из X-User-ID)
	SpaceID   string    // ID парковочного места
	StartTime time.Time // Начало аренды
	EndTime   time.Time // Окончание аренды
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking

	// Расчет цены на момент создания
	BillableHours int64
	PricePerHour  decimal.Decimal
	Multiplier    decimal.Decimal
	Discount      decimal.Decimal
}

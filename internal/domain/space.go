package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParkingSpace парковочное место из сервиса объявлений
type ParkingSpace struct {
	ID      string
	HostID  string
	Title   string
	Address string

	PricePerHour             decimal.Decimal
	MinimumDurationHours     int
	FirstHourDiscountEnabled bool
	FirstHourDiscountPercent int
	EventRules               []EventPricingRule

	// Габариты места, nil означает отсутствие ограничения
	MaxLength *decimal.Decimal
	MaxWidth  *decimal.Decimal
	MaxHeight *decimal.Decimal

	AllowsTrucks bool
	EVCharging   bool
	Covered      bool
	Security     bool
	HeightLimit  *decimal.Decimal

	// Distance расстояние в милях от точки поиска, заполняется при поиске
	Distance *decimal.Decimal
}

// EventPricingRule повышающий коэффициент цены на время события
type EventPricingRule struct {
	ID         string
	Name       string
	StartsAt   time.Time
	EndsAt     time.Time
	Multiplier decimal.Decimal
	Active     bool
}

// Intersects пересекается ли правило с окном [start, end)
func (r EventPricingRule) Intersects(start, end time.Time) bool {
	return r.StartsAt.Before(end) && start.Before(r.EndsAt)
}

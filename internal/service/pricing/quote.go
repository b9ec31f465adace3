package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Quote разбивка стоимости бронирования места
type Quote struct {
	SpaceID         string
	StartTime       time.Time
	EndTime         time.Time
	BillableHours   int64
	PricePerHour    decimal.Decimal
	Multiplier      decimal.Decimal
	EffectiveRate   decimal.Decimal
	BasePrice       decimal.Decimal
	DiscountPercent int
	Discount        decimal.Decimal
	Total           decimal.Decimal
}

// QuoteFor считает стоимость окна для места
// Коэффициент события применяется к почасовой цене, скидка первого часа считается от эффективной цены
func QuoteFor(space *domain.ParkingSpace, start, end time.Time) (*Quote, error) {
	if space.PricePerHour.IsNegative() {
		return nil, ErrInvalidRate
	}

	hours, err := BillableHours(start, end, space.MinimumDurationHours)
	if err != nil {
		return nil, err
	}

	multiplier := ResolveEventMultiplier(space.EventRules, start, end)
	rate, err := ApplyEventMultiplier(space.PricePerHour, multiplier)
	if err != nil {
		return nil, err
	}
	base := priceForHours(rate, hours)

	discountPercent := 0
	if space.FirstHourDiscountEnabled {
		discountPercent = space.FirstHourDiscountPercent
	}
	total, err := ApplyFirstHourDiscount(base, rate, discountPercent)
	if err != nil {
		return nil, err
	}

	return &Quote{
		SpaceID:         space.ID,
		StartTime:       start,
		EndTime:         end,
		BillableHours:   hours,
		PricePerHour:    space.PricePerHour,
		Multiplier:      multiplier,
		EffectiveRate:   rate,
		BasePrice:       base,
		DiscountPercent: discountPercent,
		Discount:        base.Sub(total),
		Total:           total,
	}, nil
}

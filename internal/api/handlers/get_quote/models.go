package get_quote

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/pricing"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	SpaceID         string    `json:"spaceId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	BillableHours   int64     `json:"billableHours"`
	PricePerHour    string    `json:"pricePerHour"`
	Multiplier      string    `json:"multiplier"`
	EffectiveRate   string    `json:"effectiveRate"`
	BasePrice       string    `json:"basePrice"`
	DiscountPercent int       `json:"discountPercent"`
	Discount        string    `json:"discount"`
	Total           string    `json:"total"`
}

// FromQuote конвертирует расчет цены в HTTP response
func FromQuote(q *pricing.Quote) *QuoteResponse {
	return &QuoteResponse{
		SpaceID:         q.SpaceID,
		StartTime:       q.StartTime,
		EndTime:         q.EndTime,
		BillableHours:   q.BillableHours,
		PricePerHour:    q.PricePerHour.StringFixed(domain.MoneyPlaces),
		Multiplier:      q.Multiplier.String(),
		EffectiveRate:   q.EffectiveRate.StringFixed(domain.MoneyPlaces),
		BasePrice:       q.BasePrice.StringFixed(domain.MoneyPlaces),
		DiscountPercent: q.DiscountPercent,
		Discount:        q.Discount.StringFixed(domain.MoneyPlaces),
		Total:           q.Total.StringFixed(domain.MoneyPlaces),
	}
}

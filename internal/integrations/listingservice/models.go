package listingservice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Space модель парковочного места из ListingService
// Денежные и размерные поля приходят строками
type Space struct {
	ID                       string           `json:"id"`
	HostID                   string           `json:"host_id"`
	Title                    string           `json:"title"`
	Address                  string           `json:"address"`
	PricePerHour             decimal.Decimal  `json:"price_per_hour"`
	MinimumDurationHours     int              `json:"minimum_duration_hours"`
	FirstHourDiscountEnabled bool             `json:"first_hour_discount_enabled"`
	FirstHourDiscountPercent int              `json:"first_hour_discount_percent"`
	EventRules               []EventRule      `json:"event_rules"`
	MaxLength                *decimal.Decimal `json:"max_length,omitempty"`
	MaxWidth                 *decimal.Decimal `json:"max_width,omitempty"`
	MaxHeight                *decimal.Decimal `json:"max_height,omitempty"`
	AllowsTrucks             bool             `json:"allows_trucks"`
	EVCharging               bool             `json:"ev_charging"`
	Covered                  bool             `json:"covered"`
	Security                 bool             `json:"security"`
	HeightLimit              *decimal.Decimal `json:"height_limit,omitempty"`
	Distance                 *decimal.Decimal `json:"distance,omitempty"`
}

// EventRule правило событийной цены
type EventRule struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	StartsAt   time.Time       `json:"starts_at"`
	EndsAt     time.Time       `json:"ends_at"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Active     bool            `json:"active"`
}

// SearchResponse ответ поиска мест
type SearchResponse struct {
	Spaces []Space `json:"spaces"`
}

// ToDomain конвертирует модель сервиса в domain
func (s *Space) ToDomain() *domain.ParkingSpace {
	minimum := s.MinimumDurationHours
	if minimum < domain.MinBillableHours {
		minimum = domain.MinBillableHours
	}

	rules := make([]domain.EventPricingRule, 0, len(s.EventRules))
	for _, r := range s.EventRules {
		rules = append(rules, domain.EventPricingRule{
			ID:         r.ID,
			Name:       r.Name,
			StartsAt:   r.StartsAt,
			EndsAt:     r.EndsAt,
			Multiplier: r.Multiplier,
			Active:     r.Active,
		})
	}

	return &domain.ParkingSpace{
		ID:                       s.ID,
		HostID:                   s.HostID,
		Title:                    s.Title,
		Address:                  s.Address,
		PricePerHour:             s.PricePerHour,
		MinimumDurationHours:     minimum,
		FirstHourDiscountEnabled: s.FirstHourDiscountEnabled,
		FirstHourDiscountPercent: s.FirstHourDiscountPercent,
		EventRules:               rules,
		MaxLength:                s.MaxLength,
		MaxWidth:                 s.MaxWidth,
		MaxHeight:                s.MaxHeight,
		AllowsTrucks:             s.AllowsTrucks,
		EVCharging:               s.EVCharging,
		Covered:                  s.Covered,
		Security:                 s.Security,
		HeightLimit:              s.HeightLimit,
		Distance:                 s.Distance,
	}
}

// FromDomain обратная конвертация, используется кэшем
func FromDomain(p *domain.ParkingSpace) *Space {
	rules := make([]EventRule, 0, len(p.EventRules))
	for _, r := range p.EventRules {
		rules = append(rules, EventRule{
			ID:         r.ID,
			Name:       r.Name,
			StartsAt:   r.StartsAt,
			EndsAt:     r.EndsAt,
			Multiplier: r.Multiplier,
			Active:     r.Active,
		})
	}

	return &Space{
		ID:                       p.ID,
		HostID:                   p.HostID,
		Title:                    p.Title,
		Address:                  p.Address,
		PricePerHour:             p.PricePerHour,
		MinimumDurationHours:     p.MinimumDurationHours,
		FirstHourDiscountEnabled: p.FirstHourDiscountEnabled,
		FirstHourDiscountPercent: p.FirstHourDiscountPercent,
		EventRules:               rules,
		MaxLength:                p.MaxLength,
		MaxWidth:                 p.MaxWidth,
		MaxHeight:                p.MaxHeight,
		AllowsTrucks:             p.AllowsTrucks,
		EVCharging:               p.EVCharging,
		Covered:                  p.Covered,
		Security:                 p.Security,
		HeightLimit:              p.HeightLimit,
		Distance:                 p.Distance,
	}
}

// ErrorResponse модель ошибки от ListingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

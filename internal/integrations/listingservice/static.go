package listingservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// StaticCatalog каталог мест из конфигурации
// Используется для локального запуска и демо без ListingService
type StaticCatalog struct {
	spaces []*domain.ParkingSpace
	byID   map[string]*domain.ParkingSpace
}

// NewStaticCatalog разбирает места из секции [[spaces]]
func NewStaticCatalog(spaces []config.SpaceConfig) (*StaticCatalog, error) {
	c := &StaticCatalog{
		spaces: make([]*domain.ParkingSpace, 0, len(spaces)),
		byID:   make(map[string]*domain.ParkingSpace, len(spaces)),
	}

	for _, s := range spaces {
		space, err := parseSpace(s)
		if err != nil {
			return nil, fmt.Errorf("%w: space %q: %v", ErrInvalidCatalog, s.ID, err)
		}
		c.spaces = append(c.spaces, space)
		c.byID[space.ID] = space
	}

	return c, nil
}

func (c *StaticCatalog) GetSpace(_ context.Context, spaceID string) (*domain.ParkingSpace, error) {
	space, ok := c.byID[spaceID]
	if !ok {
		return nil, ErrSpaceNotFound
	}
	return FromDomain(space).ToDomain(), nil
}

// SearchSpaces возвращает все места каталога с расстоянием из конфигурации
func (c *StaticCatalog) SearchSpaces(_ context.Context, _, _ *decimal.Decimal) ([]*domain.ParkingSpace, error) {
	result := make([]*domain.ParkingSpace, 0, len(c.spaces))
	for _, s := range c.spaces {
		result = append(result, FromDomain(s).ToDomain())
	}
	return result, nil
}

func parseSpace(s config.SpaceConfig) (*domain.ParkingSpace, error) {
	price, err := decimal.NewFromString(s.PricePerHour)
	if err != nil {
		return nil, fmt.Errorf("price_per_hour: %v", err)
	}

	space := &domain.ParkingSpace{
		ID:                       s.ID,
		HostID:                   s.HostID,
		Title:                    s.Title,
		Address:                  s.Address,
		PricePerHour:             price,
		MinimumDurationHours:     s.MinimumDurationHours,
		FirstHourDiscountEnabled: s.FirstHourDiscountEnabled,
		FirstHourDiscountPercent: s.FirstHourDiscountPercent,
		AllowsTrucks:             s.AllowsTrucks,
		EVCharging:               s.EVCharging,
		Covered:                  s.Covered,
		Security:                 s.Security,
	}

	optional := []struct {
		name string
		raw  string
		dst  **decimal.Decimal
	}{
		{"max_length", s.MaxLength, &space.MaxLength},
		{"max_width", s.MaxWidth, &space.MaxWidth},
		{"max_height", s.MaxHeight, &space.MaxHeight},
		{"height_limit", s.HeightLimit, &space.HeightLimit},
		{"distance", s.Distance, &space.Distance},
	}
	for _, o := range optional {
		if strings.TrimSpace(o.raw) == "" {
			continue
		}
		v, err := decimal.NewFromString(strings.TrimSpace(o.raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %v", o.name, err)
		}
		*o.dst = &v
	}

	for _, r := range s.EventRules {
		startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
		if err != nil {
			return nil, fmt.Errorf("event rule %q starts_at: %v", r.ID, err)
		}
		endsAt, err := time.Parse(time.RFC3339, r.EndsAt)
		if err != nil {
			return nil, fmt.Errorf("event rule %q ends_at: %v", r.ID, err)
		}
		multiplier, err := decimal.NewFromString(r.Multiplier)
		if err != nil {
			return nil, fmt.Errorf("event rule %q multiplier: %v", r.ID, err)
		}
		space.EventRules = append(space.EventRules, domain.EventPricingRule{
			ID:         r.ID,
			Name:       r.Name,
			StartsAt:   startsAt,
			EndsAt:     endsAt,
			Multiplier: multiplier,
			Active:     r.Active,
		})
	}

	return space, nil
}

package availability

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SortKey ключ сортировки результатов поиска
type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByPrice    SortKey = "price"
)

// Criteria условия поиска, nil и false означают отсутствие ограничения
type Criteria struct {
	MaxPrice    *decimal.Decimal
	MaxDistance *decimal.Decimal
	EVCharging  bool
	Covered     bool
	Security    bool
	MinHeight   *decimal.Decimal
}

// Validate проверяет, что ограничения неотрицательны
func (c Criteria) Validate() error {
	for _, v := range []*decimal.Decimal{c.MaxPrice, c.MaxDistance, c.MinHeight} {
		if v != nil && v.IsNegative() {
			return ErrNegativeCriteria
		}
	}
	return nil
}

// ParseSortKey разбирает ключ сортировки, пустая строка означает сортировку по расстоянию
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByDistance, nil
	case SortByDistance, SortByPrice:
		return SortKey(s), nil
	}
	return "", ErrUnknownSortKey
}

// FilterSpaces оставляет места, удовлетворяющие всем заданным условиям
// Исходный порядок сохраняется
func FilterSpaces(spaces []*domain.ParkingSpace, c Criteria) []*domain.ParkingSpace {
	result := make([]*domain.ParkingSpace, 0, len(spaces))
	for _, s := range spaces {
		if matches(s, c) {
			result = append(result, s)
		}
	}
	return result
}

func matches(s *domain.ParkingSpace, c Criteria) bool {
	if c.MaxPrice != nil && s.PricePerHour.GreaterThan(*c.MaxPrice) {
		return false
	}
	// Место без расстояния не проходит фильтр по расстоянию
	if c.MaxDistance != nil && (s.Distance == nil || s.Distance.GreaterThan(*c.MaxDistance)) {
		return false
	}
	if c.EVCharging && !s.EVCharging {
		return false
	}
	if c.Covered && !s.Covered {
		return false
	}
	if c.Security && !s.Security {
		return false
	}
	// Место без ограничения высоты проходит
	if c.MinHeight != nil && s.HeightLimit != nil && s.HeightLimit.LessThan(*c.MinHeight) {
		return false
	}
	return true
}

// SortSpaces стабильно сортирует места на месте
// Второй ключ разрешает равенство первого, места без расстояния идут последними
func SortSpaces(spaces []*domain.ParkingSpace, key SortKey) {
	sort.SliceStable(spaces, func(i, j int) bool {
		a, b := spaces[i], spaces[j]
		if key == SortByPrice {
			if c := a.PricePerHour.Cmp(b.PricePerHour); c != 0 {
				return c < 0
			}
			return compareDistance(a.Distance, b.Distance) < 0
		}

		if c := compareDistance(a.Distance, b.Distance); c != 0 {
			return c < 0
		}
		return a.PricePerHour.LessThan(b.PricePerHour)
	})
}

func compareDistance(a, b *decimal.Decimal) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Cmp(*b)
}

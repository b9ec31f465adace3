package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// BillableHours количество оплачиваемых часов окна
// Неполный час округляется вверх, минимум max(minimumHours, 1)
func BillableHours(start, end time.Time, minimumHours int) (int64, error) {
	if !end.After(start) {
		return 0, ErrInvalidWindow
	}

	d := end.Sub(start)
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}

	floor := int64(minimumHours)
	if floor < domain.MinBillableHours {
		floor = domain.MinBillableHours
	}
	if hours < floor {
		hours = floor
	}

	return hours, nil
}

// ComputeBasePrice стоимость окна без скидок и коэффициентов, не меньше одного часа
func ComputeBasePrice(pricePerHour decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	if pricePerHour.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}

	hours, err := BillableHours(start, end, domain.MinBillableHours)
	if err != nil {
		return decimal.Zero, err
	}

	return priceForHours(pricePerHour, hours), nil
}

func priceForHours(pricePerHour decimal.Decimal, hours int64) decimal.Decimal {
	return roundMoney(pricePerHour.Mul(decimal.NewFromInt(hours)))
}

// ApplyFirstHourDiscount уменьшает стоимость первого часа на discountPercent
// rate*(1-pct/100) + rate*(hours-1) == base - rate*pct/100
func ApplyFirstHourDiscount(base, pricePerHour decimal.Decimal, discountPercent int) (decimal.Decimal, error) {
	if discountPercent < 0 || discountPercent > domain.MaxFirstHourDiscountPercent {
		return decimal.Zero, ErrInvalidDiscount
	}
	if discountPercent == 0 {
		return base, nil
	}

	discount := pricePerHour.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred)
	return roundMoney(base.Sub(discount)), nil
}

// ApplyEventMultiplier умножает стоимость на коэффициент события
func ApplyEventMultiplier(base, multiplier decimal.Decimal) (decimal.Decimal, error) {
	if !multiplier.IsPositive() {
		return decimal.Zero, ErrInvalidMultiplier
	}
	return roundMoney(base.Mul(multiplier)), nil
}

// ResolveEventMultiplier коэффициент для окна [start, end)
// Из активных правил, пересекающих окно, выбирается наибольший коэффициент, иначе 1
func ResolveEventMultiplier(rules []domain.EventPricingRule, start, end time.Time) decimal.Decimal {
	result := one
	found := false

	for _, rule := range rules {
		if !rule.Active || !rule.Multiplier.IsPositive() || !rule.Intersects(start, end) {
			continue
		}
		if !found || rule.Multiplier.GreaterThan(result) {
			result = rule.Multiplier
			found = true
		}
	}

	return result
}

// ComputeExtensionCost стоимость продления по текущей почасовой цене
func ComputeExtensionCost(pricePerHour decimal.Decimal, additionalHours int) (decimal.Decimal, error) {
	if additionalHours <= 0 {
		return decimal.Zero, ErrInvalidHours
	}
	if pricePerHour.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	return roundMoney(pricePerHour.Mul(decimal.NewFromInt(int64(additionalHours)))), nil
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(domain.MoneyPlaces)
}

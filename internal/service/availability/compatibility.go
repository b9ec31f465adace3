package availability

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CheckCompatibility проверяет, помещается ли машина на место
// Некорректные габариты машины делают результат несовместимым, но не приводят к ошибке
func CheckCompatibility(vehicle *domain.Vehicle, space *domain.ParkingSpace) domain.Compatibility {
	result := domain.Compatibility{
		Issues:   []string{},
		Warnings: []string{},
	}

	checkDimension(&result, "length", vehicle.Length, space.MaxLength)
	checkDimension(&result, "width", vehicle.Width, space.MaxWidth)
	checkDimension(&result, "height", vehicle.Height, space.MaxHeight)

	if vehicle.Type == domain.VehicleTruck && !space.AllowsTrucks {
		result.Issues = append(result.Issues, "space does not allow trucks")
	}

	if vehicle.IsElectric && !space.EVCharging {
		result.Warnings = append(result.Warnings, "space has no EV charging")
	}

	result.Compatible = len(result.Issues) == 0
	return result
}

// checkDimension граница включительная: 6.5 при лимите 6.5 помещается
func checkDimension(result *domain.Compatibility, name, raw string, limit *decimal.Decimal) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("invalid vehicle %s %q", name, raw))
		return
	}
	if value.IsNegative() {
		result.Issues = append(result.Issues, fmt.Sprintf("invalid vehicle %s %q", name, raw))
		return
	}

	if limit != nil && value.GreaterThan(*limit) {
		result.Issues = append(result.Issues,
			fmt.Sprintf("vehicle %s %s exceeds space limit %s", name, value.String(), limit.String()))
	}
}

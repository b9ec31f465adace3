package search_spaces

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// validateLocation проверяет точку поиска
func validateLocation(lat, lng *decimal.Decimal) error {
	if (lat == nil) != (lng == nil) {
		return fmt.Errorf("%w: lat and lng must be set together", ErrInvalidInput)
	}
	if lat == nil {
		return nil
	}

	if lat.Abs().GreaterThan(maxLatitude) {
		return fmt.Errorf("%w: lat must be in -90..90", ErrInvalidInput)
	}
	if lng.Abs().GreaterThan(maxLongitude) {
		return fmt.Errorf("%w: lng must be in -180..180", ErrInvalidInput)
	}

	return nil
}

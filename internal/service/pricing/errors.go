package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidWindow возвращается, когда конец окна не позже начала
	ErrInvalidWindow = fmt.Errorf("%w: pricing: end time must be after start time", domain.ErrInvalidWindow)

	// ErrInvalidDiscount возвращается при скидке вне диапазона 0..50
	ErrInvalidDiscount = fmt.Errorf("%w: pricing: discount percent must be in 0..%d", domain.ErrInvalidInput, domain.MaxFirstHourDiscountPercent)

	// ErrInvalidMultiplier возвращается при неположительном коэффициенте
	ErrInvalidMultiplier = fmt.Errorf("%w: pricing: multiplier must be positive", domain.ErrInvalidInput)

	// ErrInvalidHours возвращается при неположительном количестве часов продления
	ErrInvalidHours = fmt.Errorf("%w: pricing: additional hours must be positive", domain.ErrInvalidInput)

	// ErrInvalidRate возвращается при отрицательной почасовой цене
	ErrInvalidRate = fmt.Errorf("%w: pricing: price per hour must not be negative", domain.ErrInvalidInput)
)

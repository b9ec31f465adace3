package availability

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrUnknownSortKey возвращается при неизвестном ключе сортировки
	ErrUnknownSortKey = fmt.Errorf("%w: availability: unknown sort key", domain.ErrInvalidInput)

	// ErrNegativeCriteria возвращается при отрицательных ограничениях фильтра
	ErrNegativeCriteria = fmt.Errorf("%w: availability: criteria limits must not be negative", domain.ErrInvalidInput)
)

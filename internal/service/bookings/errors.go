package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrSpaceNotFound возвращается, когда место бронирования не найдено в ListingService
	ErrSpaceNotFound = fmt.Errorf("%w: space not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на бронирование
	ErrAccessDenied = fmt.Errorf("%w: booking access denied", domain.ErrAccessDenied)

	// ErrHostOnly возвращается, когда команду может выполнить только хост
	ErrHostOnly = fmt.Errorf("%w: only the host of the space can do this", domain.ErrAccessDenied)

	// ErrRenterOnly возвращается, когда команду может выполнить только арендатор
	ErrRenterOnly = fmt.Errorf("%w: only the renter can do this", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid booking data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

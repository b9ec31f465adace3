package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда парковочное место не найдено
	ErrSpaceNotFound = fmt.Errorf("%w: create_booking: space not found", domain.ErrNotFound)

	// ErrInvalidWindow возвращается при некорректном окне бронирования
	ErrInvalidWindow = fmt.Errorf("%w: create_booking: invalid booking window", domain.ErrInvalidWindow)

	// ErrSpaceUnavailable возвращается, когда окно пересекается с активным бронированием
	ErrSpaceUnavailable = fmt.Errorf("%w: create_booking: space is already booked for this window", domain.ErrSpaceUnavailable)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

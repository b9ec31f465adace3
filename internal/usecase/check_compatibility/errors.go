package check_compatibility

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда парковочное место не найдено
	ErrSpaceNotFound = fmt.Errorf("%w: check_compatibility: space not found", domain.ErrNotFound)

	// ErrVehicleNotFound возвращается, когда машина не найдена в профиле
	ErrVehicleNotFound = fmt.Errorf("%w: check_compatibility: vehicle not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда машина принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("%w: check_compatibility: vehicle belongs to another user", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: check_compatibility: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_compatibility: internal error")
)

package profileservice

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrVehicleNotFound возвращается, когда у пользователя нет такой машины
	ErrVehicleNotFound = fmt.Errorf("%w: profileservice: vehicle not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)

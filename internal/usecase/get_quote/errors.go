package get_quote

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда парковочное место не найдено
	ErrSpaceNotFound = fmt.Errorf("%w: get_quote: space not found", domain.ErrNotFound)

	// ErrInvalidWindow возвращается при некорректном окне
	ErrInvalidWindow = fmt.Errorf("%w: get_quote: invalid window", domain.ErrInvalidWindow)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_quote: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)

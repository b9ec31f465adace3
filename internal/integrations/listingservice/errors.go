package listingservice

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда парковочное место не найдено
	ErrSpaceNotFound = fmt.Errorf("%w: listingservice: space not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("listingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("listingservice client: invalid response")

	// ErrInvalidCatalog возвращается при некорректном статическом каталоге
	ErrInvalidCatalog = errors.New("listingservice: invalid static catalog")
)

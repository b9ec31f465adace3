package memory

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: memory: booking not found", domain.ErrNotFound)

	// ErrPolicyNotFound возвращается, когда политика отмены не найдена
	ErrPolicyNotFound = fmt.Errorf("%w: memory: policy not found", domain.ErrNotFound)

	// ErrDuplicateID возвращается при вставке бронирования с уже занятым ID
	ErrDuplicateID = fmt.Errorf("%w: memory: booking id already exists", domain.ErrInvalidInput)
)

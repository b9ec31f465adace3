package policy

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrPolicyNotFound возвращается, когда политика не найдена
	ErrPolicyNotFound = fmt.Errorf("%w: policy not found", domain.ErrNotFound)

	// ErrSpaceNotFound возвращается, когда парковочное место не найдено
	ErrSpaceNotFound = fmt.Errorf("%w: space not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не является хостом
	ErrAccessDenied = fmt.Errorf("%w: only the host can manage cancellation policies", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid policy data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy service: internal error")
)

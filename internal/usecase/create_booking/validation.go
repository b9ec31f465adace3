package create_booking

import (
	"fmt"
	"strings"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.RenterID) == "" {
		return fmt.Errorf("%w: renterID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SpaceID) == "" {
		return fmt.Errorf("%w: spaceID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	return nil
}

// validateWindow проверяет окно бронирования относительно текущего времени
func validateWindow(start, end, now time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidWindow)
	}

	// Бронировать можно только будущее время
	if !start.After(now) {
		return fmt.Errorf("%w: startTime must be in the future", ErrInvalidWindow)
	}

	return nil
}

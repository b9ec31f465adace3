package bookings

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/pricing"
)

var hundred = decimal.NewFromInt(100)

// ComputeRefund сумма возврата при отмене в момент now
// До дедлайна бесплатной отмены возвращается вся сумма,
// начиная с дедлайна удерживается LateCancellationFeePercent
func ComputeRefund(total decimal.Decimal, policy *domain.CancellationPolicy, start, now time.Time) decimal.Decimal {
	if now.Before(policy.FreeCancellationDeadline(start)) {
		return total.Round(domain.MoneyPlaces)
	}

	fee := total.
		Mul(decimal.NewFromInt(int64(policy.LateCancellationFeePercent))).
		Div(hundred).
		Round(domain.MoneyPlaces)

	return total.Sub(fee).Round(domain.MoneyPlaces)
}

func computeExtensionCost(space *domain.ParkingSpace, additionalHours int) (decimal.Decimal, error) {
	cost, err := pricing.ComputeExtensionCost(space.PricePerHour, additionalHours)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return cost, nil
}

// extensionPatch изменения бронирования при продлении
// OriginalEndTime фиксируется только при первом продлении
func extensionPatch(current *domain.Booking, newEnd time.Time, additionalHours int, cost decimal.Decimal) domain.BookingPatch {
	totalPrice := current.TotalPrice.Add(cost)
	extensionPrice := current.ExtensionPrice.Add(cost)
	extendedCount := current.ExtendedCount + additionalHours

	patch := domain.BookingPatch{
		EndTime:        &newEnd,
		TotalPrice:     &totalPrice,
		ExtensionPrice: &extensionPrice,
		ExtendedCount:  &extendedCount,
	}
	if current.OriginalEndTime == nil {
		originalEnd := current.EndTime
		patch.OriginalEndTime = &originalEnd
	}
	return patch
}

func validateIssueDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(description)

	if length < domain.MinIssueDescriptionLength {
		return "", fmt.Errorf("%w: description must be at least %d characters", ErrInvalidInput, domain.MinIssueDescriptionLength)
	}
	if length > domain.MaxIssueDescriptionLength {
		return "", fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxIssueDescriptionLength)
	}
	return description, nil
}

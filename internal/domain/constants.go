package domain

// Значения политики отмены по умолчанию
const (
	DefaultFreeCancellationHours      = 2
	DefaultLateCancellationFeePercent = 50
)

// Ограничения бизнес-валидации
const (
	MinIssueDescriptionLength     = 10
	MaxIssueDescriptionLength     = 2000
	MaxFirstHourDiscountPercent   = 50
	MaxFreeCancellationHours      = 168 // 1 неделя
	MaxLateCancellationFeePercent = 100
	MinBillableHours              = 1
)

// MoneyPlaces количество знаков после запятой для денежных сумм
const MoneyPlaces = 2

// ActiveStatuses статусы, при которых бронирование занимает место
// Используется при проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusActive,
	StatusIssueReported,
}

package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RenterID  *string   `json:"renterId,omitempty"` // Если передан, должен совпадать с X-User-ID
	SpaceID   string    `json:"spaceId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// BookingResponse HTTP response model: бронирование в общем формате
// плюс расшифровка цены на момент создания
type BookingResponse struct {
	models.BookingResponse
	BillableHours int64  `json:"billableHours"`
	PricePerHour  string `json:"pricePerHour"`
	Multiplier    string `json:"multiplier"`
	Discount      string `json:"discount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(renterID string) *createBooking.Request {
	return &createBooking.Request{
		RenterID:  renterID,
		SpaceID:   r.SpaceID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		BillableHours:   resp.BillableHours,
		PricePerHour:    models.FormatMoney(resp.PricePerHour),
		Multiplier:      resp.Multiplier.String(),
		Discount:        models.FormatMoney(resp.Discount),
	}
}

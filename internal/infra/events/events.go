package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Header общие поля события
type Header struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func newHeader(now time.Time) Header {
	return Header{
		ID:          watermill.NewUUID(),
		PublishedAt: now.UTC(),
	}
}

// BookingRef идентификаторы бронирования, которые есть в каждом событии
type BookingRef struct {
	BookingID string `json:"booking_id"`
	RenterID  string `json:"renter_id"`
	SpaceID   string `json:"space_id"`
}

func refOf(b *domain.Booking) BookingRef {
	return BookingRef{
		BookingID: b.ID,
		RenterID:  b.RenterID,
		SpaceID:   b.SpaceID,
	}
}

type BookingCreated struct {
	Header     Header     `json:"header"`
	Booking    BookingRef `json:"booking"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	TotalPrice string     `json:"total_price"`
	Status     string     `json:"status"`
}

type BookingStatusChanged struct {
	Header     Header     `json:"header"`
	Booking    BookingRef `json:"booking"`
	FromStatus string     `json:"from_status"`
	ToStatus   string     `json:"to_status"`
	ChangedBy  string     `json:"changed_by"`
}

type BookingCancelled struct {
	Header       Header     `json:"header"`
	Booking      BookingRef `json:"booking"`
	TotalPrice   string     `json:"total_price"`
	RefundAmount string     `json:"refund_amount"`
	CancelledAt  time.Time  `json:"cancelled_at"`
	CancelledBy  string     `json:"cancelled_by"`
}

type BookingExtended struct {
	Header          Header     `json:"header"`
	Booking         BookingRef `json:"booking"`
	PreviousEndTime time.Time  `json:"previous_end_time"`
	NewEndTime      time.Time  `json:"new_end_time"`
	AdditionalHours int        `json:"additional_hours"`
	ExtensionCost   string     `json:"extension_cost"`
	TotalPrice      string     `json:"total_price"`
}

type BookingIssueReported struct {
	Header      Header     `json:"header"`
	Booking     BookingRef `json:"booking"`
	IssueType   string     `json:"issue_type"`
	Description string     `json:"description"`
	ReportedAt  time.Time  `json:"reported_at"`
}

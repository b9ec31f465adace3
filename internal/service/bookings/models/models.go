package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"status"`
}

// ExtendBookingRequest запрос на продление бронирования
type ExtendBookingRequest struct {
	UserID          string    `json:"-"`
	NewEndTime      time.Time `json:"newEndTime"`
	AdditionalHours int       `json:"additionalHours"`
}

// ReportIssueRequest запрос на сообщение о проблеме
type ReportIssueRequest struct {
	UserID      string `json:"-"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
}

// ListRenterBookingsRequest запрос на получение бронирований арендатора
type ListRenterBookingsRequest struct {
	UserID   string
	RenterID string
	Status   *string
}

// ListSpaceBookingsRequest запрос на получение бронирований места
type ListSpaceBookingsRequest struct {
	UserID  string
	SpaceID string
	Status  *string
}

// Response модели

// BookingResponse ответ с данными бронирования
// Денежные суммы передаются строками с двумя знаками после запятой
type BookingResponse struct {
	ID              string     `json:"id"`
	RenterID        string     `json:"renterId"`
	SpaceID         string     `json:"spaceId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	OriginalEndTime *time.Time `json:"originalEndTime,omitempty"`
	TotalPrice      string     `json:"totalPrice"`
	ExtensionPrice  string     `json:"extensionPrice"`
	ExtendedCount   int        `json:"extendedCount"`
	Status          string     `json:"status"`

	IssueType        *string    `json:"issueType,omitempty"`
	IssueDescription *string    `json:"issueDescription,omitempty"`
	IssueReportedAt  *time.Time `json:"issueReportedAt,omitempty"`

	RefundAmount *string    `json:"refundAmount,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`

	CheckedInAt  *time.Time `json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		RenterID:         b.RenterID,
		SpaceID:          b.SpaceID,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		OriginalEndTime:  b.OriginalEndTime,
		TotalPrice:       FormatMoney(b.TotalPrice),
		ExtensionPrice:   FormatMoney(b.ExtensionPrice),
		ExtendedCount:    b.ExtendedCount,
		Status:           string(b.Status),
		IssueDescription: b.IssueDescription,
		IssueReportedAt:  b.IssueReportedAt,
		CancelledAt:      b.CancelledAt,
		CheckedInAt:      b.CheckedInAt,
		CheckedOutAt:     b.CheckedOutAt,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.IssueType != nil {
		issueType := string(*b.IssueType)
		resp.IssueType = &issueType
	}
	if b.RefundAmount != nil {
		refund := FormatMoney(*b.RefundAmount)
		resp.RefundAmount = &refund
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if bookingResp := FromDomainBooking(b); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FormatMoney сумма с двумя знаками после запятой
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s, nil
}

// ToDomainIssueType конвертирует строку в тип проблемы
func ToDomainIssueType(issueType string) (domain.IssueType, error) {
	t := domain.IssueType(issueType)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown issue type %q", domain.ErrInvalidInput, issueType)
	}
	return t, nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending       BookingStatus = "pending"
	StatusConfirmed     BookingStatus = "confirmed"
	StatusActive        BookingStatus = "active"
	StatusCompleted     BookingStatus = "completed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusIssueReported BookingStatus = "issue_reported"
)

// IsValid проверяет, что статус входит в перечисление
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled, StatusIssueReported:
		return true
	}
	return false
}

// IsTerminal завершенные и отмененные бронирования не меняются
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IssueType тип проблемы, о которой сообщил арендатор
type IssueType string

const (
	IssueBlocked  IssueType = "blocked"
	IssueNoAccess IssueType = "no_access"
	IssueDamaged  IssueType = "damaged"
	IssueOther    IssueType = "other"
)

func (t IssueType) IsValid() bool {
	switch t {
	case IssueBlocked, IssueNoAccess, IssueDamaged, IssueOther:
		return true
	}
	return false
}

// Booking бронирование парковочного места на окно [StartTime, EndTime)
type Booking struct {
	ID       string
	RenterID string
	SpaceID  string

	StartTime       time.Time
	EndTime         time.Time
	OriginalEndTime *time.Time // Заполняется один раз, при первом продлении

	TotalPrice     decimal.Decimal
	ExtensionPrice decimal.Decimal
	ExtendedCount  int // Сумма часов всех продлений

	Status BookingStatus

	IssueType        *IssueType
	IssueDescription *string
	IssueReportedAt  *time.Time

	RefundAmount *decimal.Decimal
	CancelledAt  *time.Time

	CheckedInAt  *time.Time
	CheckedOutAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive бронирование занимает место
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// Overlaps пересекается ли бронирование с полуинтервалом [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Clone глубокая копия бронирования
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	c.OriginalEndTime = cloneTime(b.OriginalEndTime)
	c.IssueReportedAt = cloneTime(b.IssueReportedAt)
	c.CancelledAt = cloneTime(b.CancelledAt)
	c.CheckedInAt = cloneTime(b.CheckedInAt)
	c.CheckedOutAt = cloneTime(b.CheckedOutAt)
	if b.IssueType != nil {
		v := *b.IssueType
		c.IssueType = &v
	}
	if b.IssueDescription != nil {
		v := *b.IssueDescription
		c.IssueDescription = &v
	}
	if b.RefundAmount != nil {
		v := *b.RefundAmount
		c.RefundAmount = &v
	}
	return &c
}

// BookingPatch частичное обновление бронирования, nil поля не меняются
type BookingPatch struct {
	Status           *BookingStatus
	EndTime          *time.Time
	OriginalEndTime  *time.Time
	TotalPrice       *decimal.Decimal
	ExtensionPrice   *decimal.Decimal
	ExtendedCount    *int
	IssueType        *IssueType
	IssueDescription *string
	IssueReportedAt  *time.Time
	RefundAmount     *decimal.Decimal
	CancelledAt      *time.Time
	CheckedInAt      *time.Time
	CheckedOutAt     *time.Time
}

// Apply применяет патч к бронированию
func (p BookingPatch) Apply(b *Booking) {
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.OriginalEndTime != nil {
		b.OriginalEndTime = cloneTime(p.OriginalEndTime)
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
	if p.ExtensionPrice != nil {
		b.ExtensionPrice = *p.ExtensionPrice
	}
	if p.ExtendedCount != nil {
		b.ExtendedCount = *p.ExtendedCount
	}
	if p.IssueType != nil {
		v := *p.IssueType
		b.IssueType = &v
	}
	if p.IssueDescription != nil {
		v := *p.IssueDescription
		b.IssueDescription = &v
	}
	if p.IssueReportedAt != nil {
		b.IssueReportedAt = cloneTime(p.IssueReportedAt)
	}
	if p.RefundAmount != nil {
		v := *p.RefundAmount
		b.RefundAmount = &v
	}
	if p.CancelledAt != nil {
		b.CancelledAt = cloneTime(p.CancelledAt)
	}
	if p.CheckedInAt != nil {
		b.CheckedInAt = cloneTime(p.CheckedInAt)
	}
	if p.CheckedOutAt != nil {
		b.CheckedOutAt = cloneTime(p.CheckedOutAt)
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

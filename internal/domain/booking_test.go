package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: base, EndTime: base.Add(2 * time.Hour)}

	assert.True(t, b.Overlaps(base.Add(time.Hour), base.Add(3*time.Hour)))
	assert.True(t, b.Overlaps(base.Add(-time.Hour), base.Add(time.Minute)))
	assert.False(t, b.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)), "end is exclusive")
	assert.False(t, b.Overlaps(base.Add(-time.Hour), base), "start is exclusive for the other window")
}

func TestBookingPatch_Apply(t *testing.T) {
	now := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	refund := decimal.RequireFromString("12.50")
	status := StatusCancelled

	b := &Booking{Status: StatusConfirmed, TotalPrice: decimal.RequireFromString("25.00")}
	BookingPatch{Status: &status, RefundAmount: &refund, CancelledAt: &now}.Apply(b)

	assert.Equal(t, StatusCancelled, b.Status)
	assert.True(t, refund.Equal(*b.RefundAmount))
	assert.Equal(t, now, *b.CancelledAt)
	assert.True(t, decimal.RequireFromString("25").Equal(b.TotalPrice), "untouched fields stay")

	// патч не делит память с бронированием
	now = now.Add(time.Hour)
	assert.NotEqual(t, now, *b.CancelledAt)
}

func TestBooking_Clone(t *testing.T) {
	desc := "gate is locked and nobody answers"
	b := &Booking{ID: "b1", IssueDescription: &desc}

	c := b.Clone()
	*c.IssueDescription = "changed"

	assert.Equal(t, "gate is locked and nobody answers", *b.IssueDescription)
}

func TestBookingStatus(t *testing.T) {
	assert.True(t, StatusIssueReported.IsValid())
	assert.False(t, BookingStatus("archived").IsValid())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())

	assert.True(t, (&Booking{Status: StatusIssueReported}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

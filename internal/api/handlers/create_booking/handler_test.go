package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

const body = `{"spaceId":"space-1","startTime":"2030-06-01T10:00:00Z","endTime":"2030-06-01T13:00:00Z"}`

func serve(uc CreateBookingUseCase, userID, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := &useCaseMock{}
	uc.On("Execute", mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.RenterID == "renter-1" && req.SpaceID == "space-1" &&
			req.StartTime.Equal(start) && req.EndTime.Equal(start.Add(3*time.Hour))
	})).Return(&createBooking.Response{
		Booking: &domain.Booking{
			ID:             "b-1",
			RenterID:       "renter-1",
			SpaceID:        "space-1",
			StartTime:      start,
			EndTime:        start.Add(3 * time.Hour),
			Status:         domain.StatusConfirmed,
			TotalPrice:     decimal.RequireFromString("30"),
			ExtensionPrice: decimal.Zero,
		},
		BillableHours: 3,
		PricePerHour:  decimal.RequireFromString("10"),
		Multiplier:    decimal.NewFromInt(1),
		Discount:      decimal.Zero,
	}, nil)

	rec := serve(uc, "renter-1", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.ID)
	assert.Equal(t, "30.00", resp.TotalPrice)
	assert.Equal(t, "0.00", resp.ExtensionPrice)
	assert.Equal(t, "confirmed", resp.Status)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		payload  string
		err      error
		wantCode int
	}{
		{"missing user", "", body, nil, http.StatusUnauthorized},
		{"malformed body", "renter-1", `{"spaceId":`, nil, http.StatusBadRequest},
		{"renter mismatch", "renter-1", `{"renterId":"other","spaceId":"space-1","startTime":"2030-06-01T10:00:00Z","endTime":"2030-06-01T11:00:00Z"}`, nil, http.StatusForbidden},
		{"invalid window", "renter-1", body, createBooking.ErrInvalidWindow, http.StatusBadRequest},
		{"invalid input", "renter-1", body, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"space not found", "renter-1", body, createBooking.ErrSpaceNotFound, http.StatusNotFound},
		{"space unavailable", "renter-1", body, createBooking.ErrSpaceUnavailable, http.StatusConflict},
		{"internal", "renter-1", body, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything).Return(nil, tt.err)
			}

			rec := serve(uc, tt.userID, tt.payload)
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
			if tt.err == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything)
			}
		})
	}
}

func TestHandle_CreatedMatchesBookingShape(t *testing.T) {
	start := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:             "b-2",
		RenterID:       "renter-1",
		SpaceID:        "space-1",
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		Status:         domain.StatusConfirmed,
		TotalPrice:     decimal.RequireFromString("27.675"),
		ExtensionPrice: decimal.Zero,
		CreatedAt:      start.Add(-time.Hour),
		UpdatedAt:      start.Add(-time.Hour),
	}
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything).Return(&createBooking.Response{
		Booking:       booking,
		BillableHours: 2,
		PricePerHour:  decimal.RequireFromString("15.375"),
		Multiplier:    decimal.RequireFromString("1.5"),
		Discount:      decimal.RequireFromString("3.075"),
	}, nil)

	rec := serve(uc, "renter-1", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "originalEndTime")
	assert.Contains(t, raw, "extendedCount")

	var created BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, *models.FromDomainBooking(booking), created.BookingResponse)
	assert.Equal(t, int64(2), created.BillableHours)
	assert.Equal(t, "15.38", created.PricePerHour)
	assert.Equal(t, "1.5", created.Multiplier)
	assert.Equal(t, "3.08", created.Discount)
	assert.Equal(t, "27.68", created.TotalPrice)
	assert.Equal(t, "0.00", created.ExtensionPrice)
}

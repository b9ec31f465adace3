package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) UpdateStatus(_ context.Context, id string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(id, req.UserID, req.Status)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, payload string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/b-1", strings.NewReader(payload))
	req = req.WithContext(middleware.WithUserID(req.Context(), "host-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		err      error
		wantCode int
	}{
		{"confirmed by host", "confirmed", nil, http.StatusOK},
		{"unknown status", "parked", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"renter confirms", "confirmed", bookings.ErrHostOnly, http.StatusForbidden},
		{"terminal booking", "active", domain.ErrInvalidTransition, http.StatusConflict},
		{"cancel after start", "cancelled", domain.ErrCancellationWindowClosed, http.StatusConflict},
		{"missing booking", "completed", bookings.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			if tt.err == nil {
				svc.On("UpdateStatus", "b-1", "host-1", tt.status).Return(&models.BookingResponse{ID: "b-1", Status: tt.status}, nil)
			} else {
				svc.On("UpdateStatus", "b-1", "host-1", tt.status).Return(nil, tt.err)
			}

			rec := serve(svc, `{"status":"`+tt.status+`"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_UnknownField(t *testing.T) {
	svc := &serviceMock{}
	rec := serve(svc, `{"status":"confirmed","userId":"someone-else"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

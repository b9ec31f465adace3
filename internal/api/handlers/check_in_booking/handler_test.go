package check_in_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
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

func (m *serviceMock) CheckIn(_ context.Context, id, userID string) (*models.BookingResponse, error) {
	args := m.Called(id, userID)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/check-in", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/check-in", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "renter-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"ok", nil, http.StatusOK},
		{"missing booking", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"host", bookings.ErrRenterOnly, http.StatusForbidden},
		{"wrong status", domain.ErrInvalidTransition, http.StatusConflict},
		{"storage failure", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			if tt.err == nil {
				svc.On("CheckIn", "b-1", "renter-1").Return(&models.BookingResponse{ID: "b-1"}, nil)
			} else {
				svc.On("CheckIn", "b-1", "renter-1").Return(nil, tt.err)
			}

			rec := serve(svc)
			assert.Equal(t, tt.wantCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

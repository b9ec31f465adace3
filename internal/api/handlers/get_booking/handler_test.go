package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Get(_ context.Context, id, userID string) (*models.BookingResponse, error) {
	args := m.Called(id, userID)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, userID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil)
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &serviceMock{}
	svc.On("Get", "b-1", "renter-1").Return(&models.BookingResponse{ID: "b-1", TotalPrice: "30.00"}, nil)

	rec := serve(svc, "renter-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b-1", body.ID)
	assert.Equal(t, "30.00", body.TotalPrice)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"missing booking", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"stranger", bookings.ErrAccessDenied, http.StatusForbidden},
		{"storage failure", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("Get", "b-1", "renter-1").Return(nil, tt.err)

			rec := serve(svc, "renter-1")
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	svc := &serviceMock{}

	rec := serve(svc, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

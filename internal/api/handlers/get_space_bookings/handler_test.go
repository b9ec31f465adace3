package get_space_bookings

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

func (m *serviceMock) ListBySpace(_ context.Context, req *models.ListSpaceBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/spaces/{spaceId}/bookings", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "host-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsArray(t *testing.T) {
	svc := &serviceMock{}
	svc.On("ListBySpace", mock.MatchedBy(func(req *models.ListSpaceBookingsRequest) bool {
		return req.UserID == "host-1" && req.SpaceID == "space-1" &&
			req.Status != nil && *req.Status == "active"
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: "b-1"}}}, nil)

	rec := serve(svc, "/spaces/space-1/bookings?status=active")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "b-1", body[0].ID)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown space", bookings.ErrSpaceNotFound, http.StatusNotFound},
		{"not the host", bookings.ErrHostOnly, http.StatusForbidden},
		{"unknown status", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"storage failure", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("ListBySpace", mock.Anything).Return(nil, tt.err)

			rec := serve(svc, "/spaces/space-1/bookings")
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

package check_compatibility

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type listingMock struct {
	mock.Mock
}

func (m *listingMock) GetSpace(_ context.Context, spaceID string) (*domain.ParkingSpace, error) {
	args := m.Called(spaceID)
	space, _ := args.Get(0).(*domain.ParkingSpace)
	return space, args.Error(1)
}

type profileMock struct {
	mock.Mock
}

func (m *profileMock) GetVehicle(_ context.Context, userID, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(userID, vehicleID)
	vehicle, _ := args.Get(0).(*domain.Vehicle)
	return vehicle, args.Error(1)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var compactSpace = &domain.ParkingSpace{
	ID:        "space-1",
	MaxLength: dec("5.0"),
	MaxWidth:  dec("2.0"),
	MaxHeight: dec("2.0"),
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name           string
		vehicle        *domain.Vehicle
		wantCompatible bool
		wantIssues     int
		wantWarnings   int
	}{
		{
			name:           "fits exactly",
			vehicle:        &domain.Vehicle{ID: "car-1", OwnerID: "user-1", Type: domain.VehicleCar, Length: "5.0", Width: "2.0", Height: "2.0"},
			wantCompatible: true,
		},
		{
			name:       "too tall truck",
			vehicle:    &domain.Vehicle{ID: "car-1", OwnerID: "user-1", Type: domain.VehicleTruck, Length: "4.8", Width: "1.9", Height: "2.6"},
			wantIssues: 2,
		},
		{
			name:           "electric without charger",
			vehicle:        &domain.Vehicle{ID: "car-1", OwnerID: "user-1", Type: domain.VehicleCar, Length: "4.2", Width: "1.8", Height: "1.5", IsElectric: true},
			wantCompatible: true,
			wantWarnings:   1,
		},
		{
			name:       "malformed width",
			vehicle:    &domain.Vehicle{ID: "car-1", OwnerID: "user-1", Type: domain.VehicleCar, Length: "4.2", Width: "wide", Height: "1.5"},
			wantIssues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := &listingMock{}
			listing.On("GetSpace", "space-1").Return(compactSpace, nil)
			profile := &profileMock{}
			profile.On("GetVehicle", "user-1", "car-1").Return(tt.vehicle, nil)

			resp, err := NewUseCase(listing, profile, logger.Nop()).Execute(context.Background(), &Request{
				UserID:    "user-1",
				SpaceID:   "space-1",
				VehicleID: "car-1",
			})
			require.NoError(t, err)

			assert.Equal(t, "space-1", resp.SpaceID)
			assert.Equal(t, "car-1", resp.VehicleID)
			assert.Equal(t, tt.wantCompatible, resp.Compatible)
			assert.Len(t, resp.Issues, tt.wantIssues)
			assert.Len(t, resp.Warnings, tt.wantWarnings)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	t.Run("missing vehicle id", func(t *testing.T) {
		_, err := NewUseCase(&listingMock{}, &profileMock{}, logger.Nop()).Execute(context.Background(), &Request{UserID: "user-1", SpaceID: "space-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		profile := &profileMock{}
		profile.On("GetVehicle", "user-1", "car-9").Return(nil, domain.ErrNotFound)
		listing := &listingMock{}

		_, err := NewUseCase(listing, profile, logger.Nop()).Execute(context.Background(), &Request{UserID: "user-1", SpaceID: "space-1", VehicleID: "car-9"})
		assert.ErrorIs(t, err, ErrVehicleNotFound)
		listing.AssertNotCalled(t, "GetSpace", mock.Anything)
	})

	t.Run("vehicle of another user", func(t *testing.T) {
		profile := &profileMock{}
		profile.On("GetVehicle", "user-1", "car-1").Return(&domain.Vehicle{ID: "car-1", OwnerID: "user-2"}, nil)

		_, err := NewUseCase(&listingMock{}, profile, logger.Nop()).Execute(context.Background(), &Request{UserID: "user-1", SpaceID: "space-1", VehicleID: "car-1"})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("space not found", func(t *testing.T) {
		profile := &profileMock{}
		profile.On("GetVehicle", "user-1", "car-1").Return(&domain.Vehicle{ID: "car-1", OwnerID: "user-1"}, nil)
		listing := &listingMock{}
		listing.On("GetSpace", "space-404").Return(nil, domain.ErrNotFound)

		_, err := NewUseCase(listing, profile, logger.Nop()).Execute(context.Background(), &Request{UserID: "user-1", SpaceID: "space-404", VehicleID: "car-1"})
		assert.ErrorIs(t, err, ErrSpaceNotFound)
	})

	t.Run("profile service failure", func(t *testing.T) {
		profile := &profileMock{}
		profile.On("GetVehicle", "user-1", "car-1").Return(nil, errors.New("503"))

		_, err := NewUseCase(&listingMock{}, profile, logger.Nop()).Execute(context.Background(), &Request{UserID: "user-1", SpaceID: "space-1", VehicleID: "car-1"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

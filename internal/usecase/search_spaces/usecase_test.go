package search_spaces

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

func (m *listingMock) SearchSpaces(_ context.Context, lat, lng *decimal.Decimal) ([]*domain.ParkingSpace, error) {
	args := m.Called(lat, lng)
	spaces, _ := args.Get(0).([]*domain.ParkingSpace)
	return spaces, args.Error(1)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func candidates() []*domain.ParkingSpace {
	return []*domain.ParkingSpace{
		{ID: "far-cheap", PricePerHour: decimal.RequireFromString("3.00"), Distance: dec("4.2"), Covered: true},
		{ID: "near-pricey", PricePerHour: decimal.RequireFromString("12.00"), Distance: dec("0.3"), EVCharging: true, Covered: true},
		{ID: "no-distance", PricePerHour: decimal.RequireFromString("5.00")},
		{ID: "mid", PricePerHour: decimal.RequireFromString("7.50"), Distance: dec("1.1"), HeightLimit: dec("2.1")},
	}
}

func ids(spaces []*domain.ParkingSpace) []string {
	result := make([]string, 0, len(spaces))
	for _, s := range spaces {
		result = append(result, s.ID)
	}
	return result
}

func TestExecute_DefaultSortByDistance(t *testing.T) {
	listing := &listingMock{}
	listing.On("SearchSpaces", (*decimal.Decimal)(nil), (*decimal.Decimal)(nil)).Return(candidates(), nil)

	resp, err := NewUseCase(listing, logger.Nop()).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, "distance", resp.SortBy)
	assert.Equal(t, []string{"near-pricey", "mid", "far-cheap", "no-distance"}, ids(resp.Spaces))
	listing.AssertExpectations(t)
}

func TestExecute_FilterAndSortByPrice(t *testing.T) {
	lat, lng := dec("55.75"), dec("37.61")
	listing := &listingMock{}
	listing.On("SearchSpaces", lat, lng).Return(candidates(), nil)

	resp, err := NewUseCase(listing, logger.Nop()).Execute(context.Background(), &Request{
		MaxPrice: dec("10"),
		Covered:  true,
		SortBy:   "price",
		Lat:      lat,
		Lng:      lng,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"far-cheap"}, ids(resp.Spaces))
}

func TestExecute_MaxDistanceExcludesUnknownDistance(t *testing.T) {
	listing := &listingMock{}
	listing.On("SearchSpaces", mock.Anything, mock.Anything).Return(candidates(), nil)

	resp, err := NewUseCase(listing, logger.Nop()).Execute(context.Background(), &Request{MaxDistance: dec("2")})
	require.NoError(t, err)

	assert.Equal(t, []string{"near-pricey", "mid"}, ids(resp.Spaces))
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"negative max price", &Request{MaxPrice: dec("-1")}},
		{"negative min height", &Request{MinHeight: dec("-0.5")}},
		{"unknown sort key", &Request{SortBy: "rating"}},
		{"lat without lng", &Request{Lat: dec("10")}},
		{"latitude out of range", &Request{Lat: dec("91"), Lng: dec("0")}},
		{"longitude out of range", &Request{Lat: dec("0"), Lng: dec("-181")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := &listingMock{}
			resp, err := NewUseCase(listing, logger.Nop()).Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			listing.AssertNotCalled(t, "SearchSpaces", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ListingFailure(t *testing.T) {
	listing := &listingMock{}
	listing.On("SearchSpaces", mock.Anything, mock.Anything).Return(nil, errors.New("listing down"))

	_, err := NewUseCase(listing, logger.Nop()).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
}

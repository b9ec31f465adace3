package listingservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

const spaceJSON = `{
	"id": "space-1",
	"host_id": "host-1",
	"title": "Garage",
	"price_per_hour": "10.50",
	"minimum_duration_hours": 0,
	"first_hour_discount_enabled": true,
	"first_hour_discount_percent": 20,
	"max_height": "2.10",
	"ev_charging": true,
	"event_rules": [
		{"id": "r1", "name": "Match", "starts_at": "2030-06-01T18:00:00Z", "ends_at": "2030-06-01T23:00:00Z", "multiplier": "1.5", "active": true}
	]
}`

func TestClient_GetSpace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/spaces/space-1":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(spaceJSON))
		case "/internal/spaces/broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":500,"message":"boom"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())

	space, err := client.GetSpace(context.Background(), "space-1")
	require.NoError(t, err)
	assert.Equal(t, "host-1", space.HostID)
	assert.True(t, space.PricePerHour.Equal(decimal.RequireFromString("10.50")))
	assert.Equal(t, 1, space.MinimumDurationHours)
	require.NotNil(t, space.MaxHeight)
	assert.Equal(t, "2.1", space.MaxHeight.String())
	assert.Nil(t, space.MaxLength)
	require.Len(t, space.EventRules, 1)
	assert.True(t, space.EventRules[0].Multiplier.Equal(decimal.RequireFromString("1.5")))

	_, err = client.GetSpace(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSpaceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = client.GetSpace(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_SearchSpaces(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"spaces":[{"id":"a","price_per_hour":"5","distance":"1.2"},{"id":"b","price_per_hour":"7"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())

	lat := decimal.RequireFromString("55.75")
	lng := decimal.RequireFromString("37.61")
	spaces, err := client.SearchSpaces(context.Background(), &lat, &lng)
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	assert.Equal(t, "lat=55.75&lng=37.61", gotQuery)
	require.NotNil(t, spaces[0].Distance)
	assert.Nil(t, spaces[1].Distance)

	_, err = client.SearchSpaces(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.Nop())

	_, err := client.GetSpace(context.Background(), "space-1")
	assert.ErrorIs(t, err, ErrInternal)
}

package policy

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migration, err := os.ReadFile("../../../../migrations/0001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(migration))
	require.NoError(t, err)

	return db
}

func TestRepository_Hierarchy(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	hostID := "host-" + uuid.NewString()

	_, err := repo.GetWithHierarchy(ctx, hostID, "space-1")
	assert.ErrorIs(t, err, ErrPolicyNotFound)

	hostWide, err := repo.Upsert(ctx, &domain.CancellationPolicy{HostID: hostID, FreeCancellationHours: 4, LateCancellationFeePercent: 25})
	require.NoError(t, err)
	assert.NotZero(t, hostWide.ID)

	got, err := repo.GetWithHierarchy(ctx, hostID, "space-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.FreeCancellationHours)

	_, err = repo.Upsert(ctx, &domain.CancellationPolicy{HostID: hostID, SpaceID: ptr.Ptr("space-1"), FreeCancellationHours: 1, LateCancellationFeePercent: 100})
	require.NoError(t, err)

	got, err = repo.GetWithHierarchy(ctx, hostID, "space-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.FreeCancellationHours)

	updated, err := repo.Upsert(ctx, &domain.CancellationPolicy{HostID: hostID, FreeCancellationHours: 6, LateCancellationFeePercent: 10})
	require.NoError(t, err)
	assert.Equal(t, hostWide.ID, updated.ID, "upsert keeps the row")

	list, err := repo.ListByHost(ctx, hostID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].SpaceID, "host-wide policy first")

	require.NoError(t, repo.Delete(ctx, hostID, ptr.Ptr("space-1")))
	assert.ErrorIs(t, repo.Delete(ctx, hostID, ptr.Ptr("space-1")), ErrPolicyNotFound)
}

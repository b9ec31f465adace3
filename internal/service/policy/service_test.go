package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/policy/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

type listingMock struct {
	mock.Mock
}

func (m *listingMock) GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error) {
	args := m.Called(ctx, spaceID)
	space, _ := args.Get(0).(*domain.ParkingSpace)
	return space, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *listingMock, *memory.PolicyRepository) {
	t.Helper()
	repo := memory.NewPolicyRepository()
	listing := &listingMock{}
	svc := NewService(repo, listing, txmanager.NewNoop(), StandardDefaults(), logger.Nop())
	return svc, listing, repo
}

func TestService_GetEffective_Hierarchy(t *testing.T) {
	svc, _, repo := newTestService(t)
	ctx := context.Background()

	policy, err := svc.GetEffective(ctx, "host-1", "space-1")
	require.NoError(t, err)
	assert.True(t, policy.IsDefault())
	assert.Equal(t, domain.DefaultFreeCancellationHours, policy.FreeCancellationHours)
	assert.Equal(t, domain.DefaultLateCancellationFeePercent, policy.LateCancellationFeePercent)

	_, err = repo.Upsert(ctx, &domain.CancellationPolicy{HostID: "host-1", FreeCancellationHours: 24, LateCancellationFeePercent: 30})
	require.NoError(t, err)

	policy, err = svc.GetEffective(ctx, "host-1", "space-1")
	require.NoError(t, err)
	assert.Equal(t, 24, policy.FreeCancellationHours)

	_, err = repo.Upsert(ctx, &domain.CancellationPolicy{HostID: "host-1", SpaceID: ptr.Ptr("space-1"), FreeCancellationHours: 1, LateCancellationFeePercent: 100})
	require.NoError(t, err)

	policy, err = svc.GetEffective(ctx, "host-1", "space-1")
	require.NoError(t, err)
	assert.Equal(t, 1, policy.FreeCancellationHours)
	assert.Equal(t, 100, policy.LateCancellationFeePercent)

	policy, err = svc.GetEffective(ctx, "host-1", "space-2")
	require.NoError(t, err)
	assert.Equal(t, 24, policy.FreeCancellationHours)
}

func TestService_CustomDefaults(t *testing.T) {
	svc := NewService(memory.NewPolicyRepository(), &listingMock{}, txmanager.NewNoop(),
		Defaults{FreeCancellationHours: 6, LateCancellationFeePercent: 0}, logger.Nop())

	policy, err := svc.GetEffective(context.Background(), "host-1", "space-1")
	require.NoError(t, err)
	assert.Equal(t, 6, policy.FreeCancellationHours)
	assert.Equal(t, 0, policy.LateCancellationFeePercent)
}

func TestService_ZeroDefaultsKept(t *testing.T) {
	svc := NewService(memory.NewPolicyRepository(), &listingMock{}, txmanager.NewNoop(), Defaults{}, logger.Nop())

	policy, err := svc.GetEffective(context.Background(), "host-1", "space-1")
	require.NoError(t, err)
	assert.Equal(t, 0, policy.FreeCancellationHours)
	assert.Equal(t, 0, policy.LateCancellationFeePercent)
}

func TestService_GetForSpace(t *testing.T) {
	svc, listing, _ := newTestService(t)
	ctx := context.Background()

	listing.On("GetSpace", mock.Anything, "space-1").Return(&domain.ParkingSpace{ID: "space-1", HostID: "host-1"}, nil)
	listing.On("GetSpace", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
	listing.On("GetSpace", mock.Anything, "broken").Return(nil, errors.New("timeout"))

	resp, err := svc.GetForSpace(ctx, "space-1")
	require.NoError(t, err)
	assert.Equal(t, models.LevelDefault, resp.Level)
	assert.Equal(t, "host-1", resp.HostID)
	assert.Nil(t, resp.CreatedAt)

	_, err = svc.GetForSpace(ctx, "missing")
	assert.ErrorIs(t, err, ErrSpaceNotFound)

	_, err = svc.GetForSpace(ctx, "broken")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Upsert(t *testing.T) {
	svc, listing, _ := newTestService(t)
	ctx := context.Background()

	listing.On("GetSpace", mock.Anything, "space-1").Return(&domain.ParkingSpace{ID: "space-1", HostID: "host-1"}, nil)
	listing.On("GetSpace", mock.Anything, "foreign").Return(&domain.ParkingSpace{ID: "foreign", HostID: "host-2"}, nil)

	resp, err := svc.Upsert(ctx, &models.UpsertPolicyRequest{
		UserID: "host-1", HostID: "host-1",
		FreeCancellationHours: 12, LateCancellationFeePercent: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelHost, resp.Level)
	assert.NotZero(t, resp.ID)

	resp, err = svc.Upsert(ctx, &models.UpsertPolicyRequest{
		UserID: "host-1", HostID: "host-1", SpaceID: ptr.Ptr("space-1"),
		FreeCancellationHours: 3, LateCancellationFeePercent: 75,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelSpace, resp.Level)

	// повторный upsert заменяет, а не добавляет
	_, err = svc.Upsert(ctx, &models.UpsertPolicyRequest{
		UserID: "host-1", HostID: "host-1", SpaceID: ptr.Ptr("space-1"),
		FreeCancellationHours: 4, LateCancellationFeePercent: 75,
	})
	require.NoError(t, err)

	list, err := svc.ListByHost(ctx, "host-1", "host-1")
	require.NoError(t, err)
	assert.Len(t, list.Policies, 2)

	_, err = svc.Upsert(ctx, &models.UpsertPolicyRequest{UserID: "host-2", HostID: "host-1", FreeCancellationHours: 1})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = svc.Upsert(ctx, &models.UpsertPolicyRequest{UserID: "host-1", HostID: "host-1", SpaceID: ptr.Ptr("foreign"), FreeCancellationHours: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Upsert(ctx, &models.UpsertPolicyRequest{UserID: "host-1", HostID: "host-1", FreeCancellationHours: 169})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Upsert(ctx, &models.UpsertPolicyRequest{UserID: "host-1", HostID: "host-1", LateCancellationFeePercent: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Upsert(ctx, &models.UpsertPolicyRequest{UserID: "host-1", HostID: "host-1", FreeCancellationHours: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_ListByHost_AccessDenied(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ListByHost(context.Background(), "host-1", "renter-1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	list, err := svc.ListByHost(context.Background(), "host-1", "host-1")
	require.NoError(t, err)
	assert.NotNil(t, list.Policies)
	assert.Empty(t, list.Policies)
}

func TestService_Delete(t *testing.T) {
	svc, _, repo := newTestService(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &domain.CancellationPolicy{HostID: "host-1", FreeCancellationHours: 24})
	require.NoError(t, err)

	err = svc.Delete(ctx, &models.DeletePolicyRequest{UserID: "renter", HostID: "host-1"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, &models.DeletePolicyRequest{UserID: "host-1", HostID: "host-1"}))

	err = svc.Delete(ctx, &models.DeletePolicyRequest{UserID: "host-1", HostID: "host-1"})
	assert.ErrorIs(t, err, ErrPolicyNotFound)

	policy, err := svc.GetEffective(ctx, "host-1", "space-1")
	require.NoError(t, err)
	assert.True(t, policy.IsDefault())
}

package create_booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

var now = time.Date(2030, 6, 1, 8, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

type fakeListing struct {
	spaces map[string]*domain.ParkingSpace
	err    error
}

func (f *fakeListing) GetSpace(_ context.Context, id string) (*domain.ParkingSpace, error) {
	if f.err != nil {
		return nil, f.err
	}
	space, ok := f.spaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return space, nil
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) BookingCreated(_ context.Context, b *domain.Booking) {
	m.Called(b.SpaceID, b.Status)
}

type fixture struct {
	uc        *UseCase
	repo      *memory.BookingRepository
	listing   *fakeListing
	publisher *publisherMock
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := memory.NewBookingRepository()
	listing := &fakeListing{spaces: map[string]*domain.ParkingSpace{
		"space-1": {
			ID:                       "space-1",
			HostID:                   "host-1",
			PricePerHour:             decimal.RequireFromString("10.00"),
			MinimumDurationHours:     1,
			FirstHourDiscountEnabled: true,
			FirstHourDiscountPercent: 20,
		},
	}}
	publisher := &publisherMock{}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	uc := NewUseCase(repo, listing, publisher, txmanager.NewNoop(), keylock.New(), m, logger.Nop())
	uc.timeProvider = fixedTime{}

	return &fixture{uc: uc, repo: repo, listing: listing, publisher: publisher, metrics: m}
}

func request(start time.Time, hours int) *Request {
	return &Request{
		RenterID:  "renter-1",
		SpaceID:   "space-1",
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours) * time.Hour),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("BookingCreated", "space-1", domain.StatusConfirmed).Once()

	start := now.Add(2 * time.Hour)
	resp, err := f.uc.Execute(context.Background(), request(start, 3))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Booking.ID)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Equal(t, int64(3), resp.BillableHours)
	assert.Equal(t, "2.00", resp.Discount.StringFixed(2))
	assert.Equal(t, "28.00", resp.Booking.TotalPrice.StringFixed(2))

	stored, err := f.repo.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "28.00", stored.TotalPrice.StringFixed(2))
	assert.True(t, stored.ExtensionPrice.IsZero())
	assert.Equal(t, start, stored.StartTime)

	f.publisher.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingCommandsTotal.WithLabelValues("create", "ok")))
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)
	start := now.Add(time.Hour)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
		kind    error
	}{
		{
			name:    "missing renter",
			req:     &Request{SpaceID: "space-1", StartTime: start, EndTime: start.Add(time.Hour)},
			wantErr: ErrInvalidInput,
			kind:    domain.ErrInvalidInput,
		},
		{
			name:    "missing space",
			req:     &Request{RenterID: "renter-1", StartTime: start, EndTime: start.Add(time.Hour)},
			wantErr: ErrInvalidInput,
			kind:    domain.ErrInvalidInput,
		},
		{
			name:    "end equals start",
			req:     &Request{RenterID: "renter-1", SpaceID: "space-1", StartTime: start, EndTime: start},
			wantErr: ErrInvalidWindow,
			kind:    domain.ErrInvalidWindow,
		},
		{
			name:    "start in the past",
			req:     request(now.Add(-time.Hour), 2),
			wantErr: ErrInvalidWindow,
			kind:    domain.ErrInvalidWindow,
		},
		{
			name:    "start equals now",
			req:     request(now, 2),
			wantErr: ErrInvalidWindow,
			kind:    domain.ErrInvalidWindow,
		},
		{
			name:    "unknown space",
			req:     &Request{RenterID: "renter-1", SpaceID: "missing", StartTime: start, EndTime: start.Add(time.Hour)},
			wantErr: ErrSpaceNotFound,
			kind:    domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	list, err := f.repo.ListBySpace(context.Background(), "space-1", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	f.publisher.AssertNotCalled(t, "BookingCreated", mock.Anything, mock.Anything)
	assert.Equal(t, float64(len(tests)), testutil.ToFloat64(f.metrics.BookingCommandsTotal.WithLabelValues("create", "error")))
}

func TestExecute_ListingFailure(t *testing.T) {
	f := newFixture(t)
	f.listing.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), request(now.Add(time.Hour), 1))
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_Overlap(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("BookingCreated", "space-1", domain.StatusConfirmed)

	start := now.Add(2 * time.Hour)
	_, err := f.uc.Execute(context.Background(), request(start, 3))
	require.NoError(t, err)

	t.Run("overlapping window is rejected", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), request(start.Add(time.Hour), 3))
		assert.ErrorIs(t, err, ErrSpaceUnavailable)
		assert.ErrorIs(t, err, domain.ErrSpaceUnavailable)
	})

	t.Run("adjacent window is allowed", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), request(start.Add(3*time.Hour), 1))
		assert.NoError(t, err)
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		cancelled, err := f.repo.Insert(context.Background(), &domain.Booking{
			RenterID:  "renter-2",
			SpaceID:   "space-1",
			StartTime: start.Add(10 * time.Hour),
			EndTime:   start.Add(12 * time.Hour),
			Status:    domain.StatusCancelled,
		})
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), request(cancelled.StartTime, 2))
		assert.NoError(t, err)
	})
}

func TestExecute_ConcurrentSameWindow(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("BookingCreated", "space-1", domain.StatusConfirmed)

	const workers = 10
	start := now.Add(4 * time.Hour)

	var (
		wg          sync.WaitGroup
		succeeded   atomic.Int32
		unavailable atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), request(start, 2))
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, ErrSpaceUnavailable):
				unavailable.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(workers-1), unavailable.Load())
	f.publisher.AssertNumberOfCalls(t, "BookingCreated", 1)
}

// conflictingRepo отдает ошибку сериализации на первых вставках, как PostgreSQL под SERIALIZABLE
type conflictingRepo struct {
	*memory.BookingRepository
	failures int
	inserts  int
}

func (r *conflictingRepo) Insert(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.inserts++
	if r.inserts <= r.failures {
		return nil, fmt.Errorf("%w: Insert - execute insert: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	}
	return r.BookingRepository.Insert(ctx, b)
}

type stubTx struct {
	dbmetrics.DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubBeginner struct {
	begun int
}

func (b *stubBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return stubTx{}, nil
}

func TestExecute_RetriesSerializationFailureOnInsert(t *testing.T) {
	repo := &conflictingRepo{BookingRepository: memory.NewBookingRepository(), failures: 2}
	f := newFixture(t)
	f.publisher.On("BookingCreated", "space-1", domain.StatusConfirmed).Once()
	db := &stubBeginner{}

	uc := NewUseCase(repo, f.listing, f.publisher, txmanager.NewTransactionManager(db), keylock.New(), f.metrics, logger.Nop())
	uc.timeProvider = fixedTime{}

	resp, err := uc.Execute(context.Background(), request(now.Add(2*time.Hour), 2))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Booking.ID)
	assert.Equal(t, 3, repo.inserts)
	assert.Equal(t, 3, db.begun)
}

func TestExecute_SerializationFailureKeepsDriverError(t *testing.T) {
	repo := &conflictingRepo{BookingRepository: memory.NewBookingRepository(), failures: 1}
	f := newFixture(t)

	uc := NewUseCase(repo, f.listing, nil, txmanager.NewNoop(), keylock.New(), nil, logger.Nop())
	uc.timeProvider = fixedTime{}

	_, err := uc.Execute(context.Background(), request(now.Add(2*time.Hour), 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, bookingRepo.ErrExecQuery)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

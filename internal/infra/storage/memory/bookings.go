package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository хранилище бронирований в памяти
// Хранит и отдает копии, поэтому вызывающий код не может изменить запись в обход Update
type BookingRepository struct {
	bookings     map[string]*domain.Booking
	bookingsLock *sync.RWMutex
	now          func() time.Time
}

// NewBookingRepository создает пустое хранилище
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings:     make(map[string]*domain.Booking),
		bookingsLock: &sync.RWMutex{},
		now:          time.Now,
	}
}

func (r *BookingRepository) Insert(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	b := booking.Clone()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	now := r.now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	r.bookingsLock.Lock()
	defer r.bookingsLock.Unlock()

	if _, exists := r.bookings[b.ID]; exists {
		return nil, ErrDuplicateID
	}
	r.bookings[b.ID] = b

	return b.Clone(), nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.bookingsLock.RLock()
	b, exists := r.bookings[id]
	r.bookingsLock.RUnlock()

	if !exists {
		return nil, ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *BookingRepository) ListByRenter(_ context.Context, renterID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.RenterID == renterID && (status == nil || b.Status == *status)
	}), nil
}

func (r *BookingRepository) ListBySpace(_ context.Context, spaceID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool {
		return b.SpaceID == spaceID && (status == nil || b.Status == *status)
	}), nil
}

// ListOverlapping активные бронирования места, пересекающие [start, end), кроме excludeID
func (r *BookingRepository) ListOverlapping(_ context.Context, spaceID string, start, end time.Time, excludeID string) ([]*domain.Booking, error) {
	result := r.filter(func(b *domain.Booking) bool {
		return b.SpaceID == spaceID && b.ID != excludeID && b.IsActive() && b.Overlaps(start, end)
	})

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

// Update сливает патч с записью и обновляет UpdatedAt
func (r *BookingRepository) Update(_ context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	r.bookingsLock.Lock()
	defer r.bookingsLock.Unlock()

	b, exists := r.bookings[id]
	if !exists {
		return nil, ErrBookingNotFound
	}

	updated := b.Clone()
	patch.Apply(updated)
	updated.UpdatedAt = r.now().UTC()
	r.bookings[id] = updated

	return updated.Clone(), nil
}

// filter новые сначала, как в PostgreSQL реализации
func (r *BookingRepository) filter(match func(b *domain.Booking) bool) []*domain.Booking {
	r.bookingsLock.RLock()
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if match(b) {
			result = append(result, b.Clone())
		}
	}
	r.bookingsLock.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.After(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

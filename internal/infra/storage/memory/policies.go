package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type policyKey struct {
	hostID  string
	spaceID string
	hostAll bool
}

func keyFor(hostID string, spaceID *string) policyKey {
	if spaceID == nil {
		return policyKey{hostID: hostID, hostAll: true}
	}
	return policyKey{hostID: hostID, spaceID: *spaceID}
}

// PolicyRepository хранилище политик отмены в памяти
type PolicyRepository struct {
	policies     map[policyKey]domain.CancellationPolicy
	policiesLock *sync.RWMutex
	nextID       int64
	now          func() time.Time
}

func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{
		policies:     make(map[policyKey]domain.CancellationPolicy),
		policiesLock: &sync.RWMutex{},
		now:          time.Now,
	}
}

func (r *PolicyRepository) GetByHostAndSpace(_ context.Context, hostID string, spaceID *string) (*domain.CancellationPolicy, error) {
	r.policiesLock.RLock()
	p, exists := r.policies[keyFor(hostID, spaceID)]
	r.policiesLock.RUnlock()

	if !exists {
		return nil, ErrPolicyNotFound
	}
	return clonePolicy(p), nil
}

// GetWithHierarchy сначала политика места, затем общая политика хоста
func (r *PolicyRepository) GetWithHierarchy(ctx context.Context, hostID, spaceID string) (*domain.CancellationPolicy, error) {
	if p, err := r.GetByHostAndSpace(ctx, hostID, &spaceID); err == nil {
		return p, nil
	}
	return r.GetByHostAndSpace(ctx, hostID, nil)
}

func (r *PolicyRepository) ListByHost(_ context.Context, hostID string) ([]*domain.CancellationPolicy, error) {
	r.policiesLock.RLock()
	result := make([]*domain.CancellationPolicy, 0)
	for k, p := range r.policies {
		if k.hostID == hostID {
			result = append(result, clonePolicy(p))
		}
	}
	r.policiesLock.RUnlock()

	// Общая политика первой, затем по space_id
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].SpaceID, result[j].SpaceID
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return *a < *b
	})
	return result, nil
}

func (r *PolicyRepository) Upsert(_ context.Context, policy *domain.CancellationPolicy) (*domain.CancellationPolicy, error) {
	r.policiesLock.Lock()
	defer r.policiesLock.Unlock()

	key := keyFor(policy.HostID, policy.SpaceID)
	now := r.now().UTC()

	stored := *clonePolicy(*policy)
	if existing, ok := r.policies[key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		stored.ID = r.nextID
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.policies[key] = stored

	return clonePolicy(stored), nil
}

func (r *PolicyRepository) Delete(_ context.Context, hostID string, spaceID *string) error {
	r.policiesLock.Lock()
	defer r.policiesLock.Unlock()

	key := keyFor(hostID, spaceID)
	if _, ok := r.policies[key]; !ok {
		return ErrPolicyNotFound
	}
	delete(r.policies, key)
	return nil
}

func clonePolicy(p domain.CancellationPolicy) *domain.CancellationPolicy {
	c := p
	if p.SpaceID != nil {
		v := *p.SpaceID
		c.SpaceID = &v
	}
	return &c
}

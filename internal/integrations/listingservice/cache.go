package listingservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const cacheKeyPrefix = "listing:space:"

// Source источник мест, который оборачивает кэш
type Source interface {
	GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error)
	SearchSpaces(ctx context.Context, lat, lng *decimal.Decimal) ([]*domain.ParkingSpace, error)
}

// CachedClient cache-aside поверх ListingService для карточек мест
// Поиск не кэшируется: расстояние зависит от точки поиска
// Ошибки Redis не ломают запрос, место берется из источника
type CachedClient struct {
	source Source
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

// NewCachedClient создает кэширующий клиент
func NewCachedClient(source Source, client *redis.Client, ttl time.Duration, log Logger) *CachedClient {
	return &CachedClient{
		source: source,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *CachedClient) GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error) {
	key := cacheKeyPrefix + spaceID

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var cached Space
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached.ToDomain(), nil
		}
		c.log.Warn("ListingCache: failed to unmarshal cached space=%s, refetching", spaceID)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("ListingCache: redis get failed for space=%s: %v", spaceID, err)
	}

	space, err := c.source.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, space)
	return space, nil
}

func (c *CachedClient) SearchSpaces(ctx context.Context, lat, lng *decimal.Decimal) ([]*domain.ParkingSpace, error) {
	return c.source.SearchSpaces(ctx, lat, lng)
}

func (c *CachedClient) store(ctx context.Context, key string, space *domain.ParkingSpace) {
	// Расстояние зависит от запроса и в карточку не кэшируется
	dto := FromDomain(space)
	dto.Distance = nil

	data, err := json.Marshal(dto)
	if err != nil {
		c.log.Warn("ListingCache: failed to marshal space=%s: %v", space.ID, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("ListingCache: redis set failed for space=%s: %v", space.ID, err)
	}
}

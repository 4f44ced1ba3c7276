package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// AvailableKey ключ списка свободных слотов
const AvailableKey = "timeslots:available:v1"

type cachedSlot struct {
	ID        uuid.UUID         `json:"id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    domain.SlotStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// Cache кэш списка свободных слотов в Redis
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш поверх клиента Redis
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// GetAvailable возвращает закэшированный список. ok=false при промахе.
func (c *Cache) GetAvailable(ctx context.Context) ([]*domain.TimeSlot, bool, error) {
	raw, err := c.client.Get(ctx, AvailableKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetAvailable: %v", ErrCacheRead, err)
	}

	var cached []cachedSlot
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("%w: GetAvailable: %v", ErrDecode, err)
	}

	slots := make([]*domain.TimeSlot, 0, len(cached))
	for _, s := range cached {
		slots = append(slots, &domain.TimeSlot{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    s.Status,
			CreatedAt: s.CreatedAt,
		})
	}

	return slots, true, nil
}

// SetAvailable сохраняет список с TTL
func (c *Cache) SetAvailable(ctx context.Context, slots []*domain.TimeSlot) error {
	cached := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		cached = append(cached, cachedSlot{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    s.Status,
			CreatedAt: s.CreatedAt,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: SetAvailable - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, AvailableKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetAvailable: %v", ErrCacheWrite, err)
	}

	return nil
}

// Invalidate удаляет закэшированный список
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, AvailableKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheWrite, err)
	}
	return nil
}

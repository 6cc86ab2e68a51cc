package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlotCache is a read-through cache for resolved day grids. It is
// best-effort throughout: any Redis failure is logged and treated as a
// miss, never surfaced to the caller.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(hallID uuid.UUID, date string) string {
	return "slots:" + hallID.String() + ":" + date
}

func (c *SlotCache) Get(ctx context.Context, hallID uuid.UUID, date string) ([]queries.SlotView, bool) {
	data, err := c.client.Get(ctx, slotKey(hallID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("slot cache get failed", "hall_id", hallID, "date", date, "error", err)
		}
		return nil, false
	}
	var views []queries.SlotView
	if err := json.Unmarshal(data, &views); err != nil {
		slog.Warn("slot cache entry corrupt", "hall_id", hallID, "date", date, "error", err)
		return nil, false
	}
	return views, true
}

func (c *SlotCache) Set(ctx context.Context, hallID uuid.UUID, date string, slots []queries.SlotView) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotKey(hallID, date), data, c.ttl).Err(); err != nil {
		slog.Warn("slot cache set failed", "hall_id", hallID, "date", date, "error", err)
	}
}

func (c *SlotCache) Invalidate(ctx context.Context, hallID uuid.UUID, dates ...string) {
	if len(dates) == 0 {
		return
	}
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = slotKey(hallID, d)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("slot cache invalidation failed", "hall_id", hallID, "error", err)
	}
}

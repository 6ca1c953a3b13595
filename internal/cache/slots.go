package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

const generationKey = "slots:gen"

// NoGeneration marks a lookup made without a readable generation counter.
const NoGeneration int64 = -1

// SlotCache stores generated slot results per (date, duration). Any write
// that can change availability bumps a generation counter, which orphans
// every cached entry at once; stale keys expire by TTL.
type SlotCache struct {
	rdb  *redis.Client
	ttl  time.Duration
	step int
	log  *zap.Logger
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration, step int, log *zap.Logger) *SlotCache {
	return &SlotCache{rdb: rdb, ttl: ttl, step: step, log: log}
}

func slotKey(gen int64, date time.Time, durationMin, step int) string {
	return fmt.Sprintf("slots:%d:%s:%d:%d", gen, date.Format("2006-01-02"), durationMin, step)
}

// generation returns the current counter, or NoGeneration when it cannot
// be read. Entries are never written or served without a known generation.
func (c *SlotCache) generation(ctx context.Context) int64 {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn("slot cache generation read failed", zap.Error(err))
		return NoGeneration
	}
	return gen
}

// Get looks up the entry under the current generation. The returned
// generation must be handed back to Set so that a result computed before
// an Invalidate is stored under the orphaned generation.
func (c *SlotCache) Get(ctx context.Context, date time.Time, durationMin int) (*availability.Result, int64, bool) {
	gen := c.generation(ctx)
	if gen == NoGeneration {
		return nil, gen, false
	}
	key := slotKey(gen, date, durationMin, c.step)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("slot cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, gen, false
	}

	var res availability.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		c.log.Warn("slot cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, gen, false
	}
	return &res, gen, true
}

// Set stores res under gen, the generation observed by the Get that missed.
func (c *SlotCache) Set(ctx context.Context, gen int64, date time.Time, durationMin int, res availability.Result) {
	if gen == NoGeneration {
		return
	}
	key := slotKey(gen, date, durationMin, c.step)

	raw, err := json.Marshal(res)
	if err != nil {
		c.log.Warn("slot cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("slot cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *SlotCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		c.log.Error("slot cache invalidation failed", zap.Error(err))
	}
}

// Nop is used when redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, time.Time, int) (*availability.Result, int64, bool) {
	return nil, NoGeneration, false
}
func (Nop) Set(context.Context, int64, time.Time, int, availability.Result) {}
func (Nop) Invalidate(context.Context)                                      {}

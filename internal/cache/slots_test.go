package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func grid(times ...string) availability.Result {
	res := availability.Result{Slots: []availability.Slot{}}
	for _, t := range times {
		res.Slots = append(res.Slots, availability.Slot{Time: t, DisplayTime: t})
	}
	return res
}

func newSlotCache(t *testing.T) (*SlotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSlotCache(rdb, 5*time.Minute, 30, zap.NewNop()), mr
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "slots:3:2026-10-19:60:30", slotKey(3, monday, 60, 30))
	assert.NotEqual(t, slotKey(3, monday, 60, 30), slotKey(4, monday, 60, 30), "generation bump changes key")
}

func TestSlotCache_SetThenGet(t *testing.T) {
	c, _ := newSlotCache(t)
	ctx := context.Background()

	_, gen, ok := c.Get(ctx, monday, 30)
	require.False(t, ok)
	assert.Equal(t, int64(0), gen)

	c.Set(ctx, gen, monday, 30, grid("09:00", "09:30"))

	res, gen2, ok := c.Get(ctx, monday, 30)
	require.True(t, ok)
	assert.Equal(t, gen, gen2)
	assert.Equal(t, grid("09:00", "09:30"), *res)

	_, _, ok = c.Get(ctx, monday, 60)
	assert.False(t, ok, "duration is part of the key")
}

func TestSlotCache_InvalidateOrphansEntries(t *testing.T) {
	c, mr := newSlotCache(t)
	ctx := context.Background()

	_, gen, _ := c.Get(ctx, monday, 30)
	c.Set(ctx, gen, monday, 30, grid("09:00"))

	c.Invalidate(ctx)

	_, newGen, ok := c.Get(ctx, monday, 30)
	assert.False(t, ok)
	assert.Equal(t, gen+1, newGen)

	v, err := mr.Get(generationKey)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestSlotCache_ResultComputedBeforeInvalidateIsNotServed(t *testing.T) {
	c, _ := newSlotCache(t)
	ctx := context.Background()

	// A reader misses and starts computing from the pre-booking state.
	_, gen, ok := c.Get(ctx, monday, 30)
	require.False(t, ok)

	// A booking commits and invalidates before the reader stores its result.
	c.Invalidate(ctx)
	c.Set(ctx, gen, monday, 30, grid("10:00"))

	res, _, ok := c.Get(ctx, monday, 30)
	assert.False(t, ok, "stale grid must not be served: %v", res)

	// The next reader stores the fresh grid under the current generation.
	_, cur, _ := c.Get(ctx, monday, 30)
	c.Set(ctx, cur, monday, 30, grid())

	res, _, ok = c.Get(ctx, monday, 30)
	require.True(t, ok)
	assert.Empty(t, res.Slots)
}

func TestSlotCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newSlotCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(slotKey(0, monday, 30, 30), "{not json"))

	res, gen, ok := c.Get(ctx, monday, 30)
	assert.False(t, ok)
	assert.Nil(t, res)
	assert.Equal(t, int64(0), gen, "generation is still usable for the rewrite")

	c.Set(ctx, gen, monday, 30, grid("09:00"))
	_, _, ok = c.Get(ctx, monday, 30)
	assert.True(t, ok)
}

func TestSlotCache_EntriesExpire(t *testing.T) {
	c, mr := newSlotCache(t)
	ctx := context.Background()

	c.Set(ctx, 0, monday, 30, grid("09:00"))
	mr.FastForward(6 * time.Minute)

	_, _, ok := c.Get(ctx, monday, 30)
	assert.False(t, ok)
}

func TestSlotCache_RedisDown(t *testing.T) {
	c, mr := newSlotCache(t)
	ctx := context.Background()
	mr.Close()

	res, gen, ok := c.Get(ctx, monday, 30)
	assert.False(t, ok)
	assert.Nil(t, res)
	assert.Equal(t, NoGeneration, gen)

	assert.NotPanics(t, func() {
		c.Set(ctx, gen, monday, 30, grid("09:00"))
		c.Invalidate(ctx)
	})
}

func TestSlotCache_SkipsWriteWithoutGeneration(t *testing.T) {
	c, mr := newSlotCache(t)

	c.Set(context.Background(), NoGeneration, monday, 30, grid("09:00"))
	assert.Empty(t, mr.Keys())
}

func TestNop(t *testing.T) {
	var c Nop
	ctx := context.Background()

	c.Set(ctx, 0, monday, 30, grid("09:00"))
	res, gen, ok := c.Get(ctx, monday, 30)
	assert.False(t, ok)
	assert.Nil(t, res)
	assert.Equal(t, NoGeneration, gen)
}

package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

// SlotCache is implemented by cache.SlotCache and cache.Nop. Get returns
// the cache generation it looked under; Set must receive that same value.
type SlotCache interface {
	Get(ctx context.Context, date time.Time, durationMin int) (res *domain.Result, gen int64, ok bool)
	Set(ctx context.Context, gen int64, date time.Time, durationMin int, res domain.Result)
	Invalidate(ctx context.Context)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

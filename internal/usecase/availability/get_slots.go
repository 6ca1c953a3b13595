package availability

import (
	"context"
	"time"

	apptdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// SlotPolicy holds the clinic rules applied to the listed grid.
type SlotPolicy struct {
	StepMinutes int
	Timezone    string
	MinAdvance  time.Duration
}

type GetSlots struct {
	avail  domain.Repository
	appts  apptdomain.Repository
	cache  SlotCache
	policy SlotPolicy
	now    func() time.Time
}

func NewGetSlots(
	avail domain.Repository,
	appts apptdomain.Repository,
	cache SlotCache,
	policy SlotPolicy,
) *GetSlots {
	return &GetSlots{
		avail:  avail,
		appts:  appts,
		cache:  cache,
		policy: policy,
		now:    time.Now,
	}
}

// WithClock replaces the time source used to drop slots that are too soon.
func (uc *GetSlots) WithClock(now func() time.Time) *GetSlots {
	uc.now = now
	return uc
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	date time.Time,
	serviceID uint,
) (domain.Result, error) {

	svc, err := uc.appts.GetService(ctx, serviceID)
	if err != nil {
		return domain.Result{}, err
	}
	if svc == nil || !svc.Active {
		return domain.Result{}, httperr.ErrBusiness("service_not_found")
	}

	day := timezone.DateOnly(date)

	cached, gen, ok := uc.cache.Get(ctx, day, svc.DurationMin)
	if ok {
		return uc.bookable(day, *cached), nil
	}

	rules, err := LoadDayRules(ctx, uc.avail, day)
	if err != nil {
		return domain.Result{}, err
	}

	booked, err := uc.appts.ListActiveForDate(ctx, day)
	if err != nil {
		return domain.Result{}, err
	}

	res, err := rules.Slots(day, svc.DurationMin, uc.policy.StepMinutes, apptdomain.Booked(booked))
	if err != nil {
		return domain.Result{}, err
	}

	uc.cache.Set(ctx, gen, day, svc.DurationMin, res)
	return uc.bookable(day, res), nil
}

// bookable drops slots starting before now + MinAdvance, the same bound
// CreateAppointment enforces. The cached grid itself stays unfiltered.
func (uc *GetSlots) bookable(day time.Time, res domain.Result) domain.Result {
	cutoff := uc.now().Add(uc.policy.MinAdvance)
	date := day.Format("2006-01-02")

	out := domain.Result{
		Slots:   make([]domain.Slot, 0, len(res.Slots)),
		Reason:  res.Reason,
		Message: res.Message,
	}
	for _, s := range res.Slots {
		start, err := timezone.ParseDateTime(uc.policy.Timezone, date, s.Time)
		if err != nil || start.Before(cutoff) {
			continue
		}
		out.Slots = append(out.Slots, s)
	}
	return out
}

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

type SlotCache struct {
	mock.Mock
}

func (c *SlotCache) Get(ctx context.Context, date time.Time, durationMin int) (*availability.Result, int64, bool) {
	args := c.Called(date, durationMin)
	res, _ := args.Get(0).(*availability.Result)
	gen, _ := args.Get(1).(int64)
	return res, gen, args.Bool(2)
}

func (c *SlotCache) Set(ctx context.Context, gen int64, date time.Time, durationMin int, res availability.Result) {
	c.Called(gen, date, durationMin, res)
}

func (c *SlotCache) Invalidate(ctx context.Context) {
	c.Called()
}

type Auditor struct {
	mock.Mock
}

func (a *Auditor) Dispatch(ev audit.Event) {
	a.Called(ev)
}

type Notifier struct {
	mock.Mock
}

func (n *Notifier) AppointmentEvent(kind notify.Kind, ap *models.Appointment) {
	n.Called(kind, ap)
}

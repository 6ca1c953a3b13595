package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	AppointmentEvent(kind notify.Kind, ap *models.Appointment)
}

type SlotInvalidator interface {
	Invalidate(ctx context.Context)
}

// Policy holds the clinic booking rules.
type Policy struct {
	Timezone           string
	MinAdvance         time.Duration
	CancellationCutoff time.Duration
	StepMinutes        int
}

func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		Timezone:           cfg.ClinicTimezone,
		MinAdvance:         time.Duration(cfg.MinAdvanceMinutes) * time.Minute,
		CancellationCutoff: time.Duration(cfg.CancellationCutoffHours) * time.Hour,
		StepMinutes:        cfg.SlotStepMinutes,
	}
}

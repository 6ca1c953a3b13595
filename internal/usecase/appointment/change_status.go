package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

// statusChanger is shared by the confirm, cancel and complete use cases.
type statusChanger struct {
	repo   domain.Repository
	cache  SlotInvalidator
	audit  Auditor
	notify Notifier
	now    func() time.Time
}

func newStatusChanger(
	repo domain.Repository,
	cache SlotInvalidator,
	audit Auditor,
	notifier Notifier,
) statusChanger {
	return statusChanger{
		repo:   repo,
		cache:  cache,
		audit:  audit,
		notify: notifier,
		now:    time.Now,
	}
}

func (s statusChanger) load(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (s statusChanger) apply(
	ctx context.Context,
	ap *models.Appointment,
	transition func(*models.Appointment, time.Time) error,
	userID *uint,
	action string,
	kind notify.Kind,
) error {

	from := ap.Status
	if err := transition(ap, s.now()); err != nil {
		return err
	}

	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": from, "to": ap.Status},
	})
	if kind != "" {
		s.notify.AppointmentEvent(kind, ap)
	}
	return nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmAppointment struct {
	statusChanger
}

func NewConfirmAppointment(
	repo domain.Repository,
	cache SlotInvalidator,
	audit Auditor,
	notifier Notifier,
) *ConfirmAppointment {
	return &ConfirmAppointment{newStatusChanger(repo, cache, audit, notifier)}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, ap, domain.Confirm, &userID, "appointment_confirmed", notify.KindBookingConfirmed); err != nil {
		return nil, err
	}
	return ap, nil
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteAppointment struct {
	statusChanger
}

func NewCompleteAppointment(
	repo domain.Repository,
	cache SlotInvalidator,
	audit Auditor,
	notifier Notifier,
) *CompleteAppointment {
	return &CompleteAppointment{newStatusChanger(repo, cache, audit, notifier)}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, ap, domain.Complete, &userID, "appointment_completed", ""); err != nil {
		return nil, err
	}
	return ap, nil
}

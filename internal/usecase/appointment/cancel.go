package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type CancelAppointment struct {
	statusChanger
	policy Policy
}

func NewCancelAppointment(
	repo domain.Repository,
	cache SlotInvalidator,
	audit Auditor,
	notifier Notifier,
	policy Policy,
) *CancelAppointment {
	return &CancelAppointment{
		statusChanger: newStatusChanger(repo, cache, audit, notifier),
		policy:        policy,
	}
}

// Execute cancels on behalf of the clinic; no cutoff applies.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, ap, domain.Cancel, &userID, "appointment_cancelled", notify.KindBookingCancelled); err != nil {
		return nil, err
	}
	return ap, nil
}

// ByPatient cancels when email matches the booking's patient and the
// appointment starts more than the cancellation cutoff from now.
func (uc *CancelAppointment) ByPatient(
	ctx context.Context,
	appointmentID uint,
	email string,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.Patient.Email == "" ||
		!strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(ap.Patient.Email)) {
		return nil, httperr.ErrBusiness("email_mismatch")
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	loc := timezone.Location(uc.policy.Timezone)
	start, err := ap.StartsAt(loc)
	if err != nil {
		return nil, err
	}
	if start.Sub(uc.now().In(loc)) <= uc.policy.CancellationCutoff {
		return nil, httperr.ErrBusiness("too_late_to_cancel")
	}

	if err := uc.apply(ctx, ap, domain.Cancel, nil, "appointment_cancelled_by_patient", notify.KindBookingCancelled); err != nil {
		return nil, err
	}
	return ap, nil
}

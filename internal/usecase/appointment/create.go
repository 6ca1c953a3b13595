package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	availdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	availuc "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientName  string
	PatientPhone string
	PatientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// UserID is the admin creating the booking; nil for public requests.
	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	avail  availdomain.Repository
	cache  SlotInvalidator
	audit  Auditor
	notify Notifier
	policy Policy
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	avail availdomain.Repository,
	cache SlotInvalidator,
	audit Auditor,
	notifier Notifier,
	policy Policy,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		avail:  avail,
		cache:  cache,
		audit:  audit,
		notify: notifier,
		policy: policy,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, err := timezone.ParseDateTime(uc.policy.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.now().In(start.Location())
	if start.Before(now.Add(uc.policy.MinAdvance)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	ap, err := uc.book(ctx, bookRequest{
		start:        start,
		serviceID:    in.ServiceID,
		patientName:  in.PatientName,
		patientPhone: in.PatientPhone,
		patientEmail: in.PatientEmail,
		notes:        in.Notes,
		status:       domain.InitialStatus(),
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"date": in.Date, "time": ap.Time, "service_id": ap.ServiceID},
	})
	uc.notify.AppointmentEvent(notify.KindBookingReceived, ap)

	return ap, nil
}

type bookRequest struct {
	start        time.Time
	serviceID    uint
	patientName  string
	patientPhone string
	patientEmail string
	notes        string
	status       domain.Status
	externalID   *string
}

// book inserts an appointment at req.start once the slot generator, run
// against the day's appointments as locked by the repository, still offers it.
func (uc *CreateAppointment) book(ctx context.Context, req bookRequest) (*models.Appointment, error) {
	svc, err := uc.repo.GetService(ctx, req.serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	day := timezone.DateOnly(req.start)
	hhmm := req.start.Format("15:04")

	rules, err := availuc.LoadDayRules(ctx, uc.avail, day)
	if err != nil {
		return nil, err
	}

	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		req.patientName,
		req.patientPhone,
		req.patientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		PatientID:  patient.ID,
		ServiceID:  svc.ID,
		Date:       day,
		Time:       hhmm,
		Duration:   svc.DurationMin,
		Status:     string(req.status),
		Notes:      req.notes,
		ExternalID: req.externalID,
	}
	if req.status == domain.StatusConfirmed {
		confirmedAt := uc.now()
		ap.ConfirmedAt = &confirmedAt
	}

	check := func(existing []models.Appointment) error {
		res, err := rules.Slots(day, svc.DurationMin, uc.policy.StepMinutes, domain.Booked(existing))
		if err != nil {
			return err
		}
		if !res.Contains(hhmm) {
			return httperr.ErrBusiness("slot_unavailable")
		}
		return nil
	}

	if err := uc.repo.CreateAppointment(ctx, ap, check); err != nil {
		return nil, err
	}

	ap.Patient = *patient
	ap.Service = *svc
	uc.cache.Invalidate(ctx)

	return ap, nil
}

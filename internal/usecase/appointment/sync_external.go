package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

type ExternalBookingInput struct {
	Event        string
	ExternalID   string
	ServiceID    uint
	Date         string
	Time         string
	PatientName  string
	PatientEmail string
	PatientPhone string
}

// SyncExternalBooking applies booking events pushed by an external
// scheduling tool. Both events are idempotent on ExternalID.
type SyncExternalBooking struct {
	create *CreateAppointment
	cancel *CancelAppointment
}

func NewSyncExternalBooking(
	create *CreateAppointment,
	cancel *CancelAppointment,
) *SyncExternalBooking {
	return &SyncExternalBooking{create: create, cancel: cancel}
}

func (uc *SyncExternalBooking) Execute(
	ctx context.Context,
	in ExternalBookingInput,
) (*models.Appointment, error) {

	if in.ExternalID == "" {
		return nil, httperr.ErrBusiness("missing_external_id")
	}

	existing, err := uc.create.repo.GetAppointmentByExternalID(ctx, in.ExternalID)
	if err != nil {
		return nil, err
	}

	switch in.Event {
	case EventBookingCreated:
		if existing != nil {
			return existing, nil
		}
		return uc.created(ctx, in)

	case EventBookingCancelled:
		if existing == nil {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		if existing.Status == string(domain.StatusCancelled) {
			return existing, nil
		}
		if err := uc.cancel.apply(
			ctx,
			existing,
			domain.Cancel,
			nil,
			"appointment_cancelled_external",
			notify.KindBookingCancelled,
		); err != nil {
			return nil, err
		}
		return existing, nil

	default:
		return nil, httperr.ErrBusiness("unknown_event")
	}
}

// created books the external slot as confirmed. The minimum-advance rule is
// not applied since the external tool already accepted the booking.
func (uc *SyncExternalBooking) created(
	ctx context.Context,
	in ExternalBookingInput,
) (*models.Appointment, error) {

	if in.PatientName == "" || in.PatientPhone == "" {
		return nil, httperr.ErrBusiness("missing_patient")
	}

	start, err := timezone.ParseDateTime(uc.create.policy.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	externalID := in.ExternalID
	ap, err := uc.create.book(ctx, bookRequest{
		start:        start,
		serviceID:    in.ServiceID,
		patientName:  in.PatientName,
		patientPhone: in.PatientPhone,
		patientEmail: in.PatientEmail,
		status:       domain.StatusConfirmed,
		externalID:   &externalID,
	})
	if err != nil {
		return nil, err
	}

	uc.create.audit.Dispatch(audit.Event{
		Action:   "appointment_created_external",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"external_id": externalID},
	})
	uc.create.notify.AppointmentEvent(notify.KindBookingConfirmed, ap)

	return ap, nil
}

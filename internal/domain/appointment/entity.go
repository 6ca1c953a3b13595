package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Booked reduces appointments to the intervals the slot generator checks.
func Booked(aps []models.Appointment) []availability.BookedInterval {
	out := make([]availability.BookedInterval, 0, len(aps))
	for _, ap := range aps {
		out = append(out, availability.BookedInterval{
			Time:      ap.Time,
			Duration:  ap.Duration,
			Cancelled: !Status(ap.Status).OccupiesSlot(),
		})
	}
	return out
}

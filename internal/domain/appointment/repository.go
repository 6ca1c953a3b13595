package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// DayCheck inspects the day's active appointments, as read inside the
// creating transaction, and returns an error to abort the insert.
type DayCheck func(existing []models.Appointment) error

// Repository is the booking store. Single-record lookups return (nil, nil)
// when nothing matches.
type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment locks the active appointments of ap.Date, runs check
	// against them and inserts ap in the same transaction. A concurrent insert
	// for the same (date, time) surfaces as the "time_conflict" business error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		check DayCheck,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByExternalID(
		ctx context.Context,
		externalID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListActiveForDate(
		ctx context.Context,
		date time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}

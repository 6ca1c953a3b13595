package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreatePatient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&patient).Error

	if err == nil {
		if email != "" && patient.Email == "" {
			patient.Email = email
			if err := r.db.WithContext(ctx).Save(&patient).Error; err != nil {
				return nil, err
			}
		}
		return &patient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	patient = models.Patient{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	// Two first bookings from the same phone race on the unique index;
	// the loser reads the winner's row.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&patient).Error
	if err != nil {
		return nil, err
	}
	if patient.ID == 0 {
		if err := r.db.WithContext(ctx).
			Where("phone = ?", phone).
			First(&patient).Error; err != nil {
			return nil, err
		}
	}

	return &patient, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

const dayLockSQL = "SELECT pg_advisory_xact_lock(hashtext(?))"

// dayLockKey names the advisory lock that serializes bookings of one day.
func dayLockKey(date time.Time) string {
	return "appointments:" + date.Format("2006-01-02")
}

// CreateAppointment holds the day's advisory lock for the whole transaction,
// so check always sees every booking committed before it, including on days
// that have no rows to lock yet.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	check domain.DayCheck,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(dayLockSQL, dayLockKey(ap.Date)).Error; err != nil {
			return err
		}

		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("date = ? AND status <> ?", ap.Date, string(domain.StatusCancelled)).
			Order("time ASC").
			Find(&existing).Error; err != nil {
			return err
		}

		if check != nil {
			if err := check(existing); err != nil {
				return err
			}
		}

		return tx.Create(ap).Error
	})

	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByExternalID(
	ctx context.Context,
	externalID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Service").
		Where("external_id = ?", externalID).
		First(&ap).Error; err != nil {
		return nil, notFoundAsNil(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForDate(
	ctx context.Context,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "date", "time", "duration", "status").
		Where("date = ? AND status <> ?", date, string(domain.StatusCancelled)).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// ListAppointmentsForPeriod returns every appointment with from <= date < to.
func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Service").
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC, time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentRepository struct {
	mock.Mock
}

func (r *AppointmentRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	args := r.Called(id)
	svc, _ := args.Get(0).(*models.Service)
	return svc, args.Error(1)
}

func (r *AppointmentRepository) GetOrCreatePatient(ctx context.Context, name, phone, email string) (*models.Patient, error) {
	args := r.Called(name, phone, email)
	p, _ := args.Get(0).(*models.Patient)
	return p, args.Error(1)
}

// CreateAppointment runs check against the appointments given as the first
// return value, then returns the second.
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, ap *models.Appointment, check domain.DayCheck) error {
	args := r.Called(ap)
	if check != nil {
		existing, _ := args.Get(0).([]models.Appointment)
		if err := check(existing); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := r.Called(id)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (r *AppointmentRepository) GetAppointmentByExternalID(ctx context.Context, externalID string) (*models.Appointment, error) {
	args := r.Called(externalID)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := r.Called(ap)
	return args.Error(0)
}

func (r *AppointmentRepository) ListActiveForDate(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	args := r.Called(date)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

func (r *AppointmentRepository) ListAppointmentsForPeriod(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	args := r.Called(from, to)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

var _ domain.Repository = (*AppointmentRepository)(nil)

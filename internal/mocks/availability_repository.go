package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityRepository struct {
	mock.Mock
}

func (r *AvailabilityRepository) ListWeekly(ctx context.Context) ([]models.WeeklyAvailability, error) {
	args := r.Called()
	out, _ := args.Get(0).([]models.WeeklyAvailability)
	return out, args.Error(1)
}

func (r *AvailabilityRepository) GetWeeklyByID(ctx context.Context, id uint) (*models.WeeklyAvailability, error) {
	args := r.Called(id)
	w, _ := args.Get(0).(*models.WeeklyAvailability)
	return w, args.Error(1)
}

func (r *AvailabilityRepository) GetWeeklyForDay(ctx context.Context, dayOfWeek int) (*models.WeeklyAvailability, error) {
	args := r.Called(dayOfWeek)
	w, _ := args.Get(0).(*models.WeeklyAvailability)
	return w, args.Error(1)
}

func (r *AvailabilityRepository) CreateWeekly(ctx context.Context, w *models.WeeklyAvailability) error {
	args := r.Called(w)
	return args.Error(0)
}

func (r *AvailabilityRepository) UpdateWeekly(ctx context.Context, w *models.WeeklyAvailability) error {
	args := r.Called(w)
	return args.Error(0)
}

func (r *AvailabilityRepository) DeleteWeekly(ctx context.Context, id uint) error {
	args := r.Called(id)
	return args.Error(0)
}

func (r *AvailabilityRepository) ListExceptions(ctx context.Context, from, to time.Time) ([]models.DateException, error) {
	args := r.Called(from, to)
	out, _ := args.Get(0).([]models.DateException)
	return out, args.Error(1)
}

func (r *AvailabilityRepository) GetExceptionByID(ctx context.Context, id uint) (*models.DateException, error) {
	args := r.Called(id)
	e, _ := args.Get(0).(*models.DateException)
	return e, args.Error(1)
}

func (r *AvailabilityRepository) GetExceptionForDate(ctx context.Context, date time.Time) (*models.DateException, error) {
	args := r.Called(date)
	e, _ := args.Get(0).(*models.DateException)
	return e, args.Error(1)
}

func (r *AvailabilityRepository) CreateException(ctx context.Context, e *models.DateException) error {
	args := r.Called(e)
	return args.Error(0)
}

func (r *AvailabilityRepository) UpdateException(ctx context.Context, e *models.DateException) error {
	args := r.Called(e)
	return args.Error(0)
}

func (r *AvailabilityRepository) DeleteException(ctx context.Context, id uint) error {
	args := r.Called(id)
	return args.Error(0)
}

var _ domain.Repository = (*AvailabilityRepository)(nil)

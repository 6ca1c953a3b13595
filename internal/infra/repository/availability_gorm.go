package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Weekly
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListWeekly(
	ctx context.Context,
) ([]models.WeeklyAvailability, error) {

	var out []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Order("day_of_week ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AvailabilityGormRepository) GetWeeklyByID(
	ctx context.Context,
	id uint,
) (*models.WeeklyAvailability, error) {

	var w models.WeeklyAvailability
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &w, nil
}

func (r *AvailabilityGormRepository) GetWeeklyForDay(
	ctx context.Context,
	dayOfWeek int,
) (*models.WeeklyAvailability, error) {

	var w models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("day_of_week = ?", dayOfWeek).
		First(&w).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &w, nil
}

func (r *AvailabilityGormRepository) CreateWeekly(
	ctx context.Context,
	w *models.WeeklyAvailability,
) error {
	err := r.db.WithContext(ctx).Create(w).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("weekday_taken")
	}
	return err
}

func (r *AvailabilityGormRepository) UpdateWeekly(
	ctx context.Context,
	w *models.WeeklyAvailability,
) error {
	err := r.db.WithContext(ctx).Save(w).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("weekday_taken")
	}
	return err
}

func (r *AvailabilityGormRepository) DeleteWeekly(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.WeeklyAvailability{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("weekly_not_found")
	}
	return nil
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

// ListExceptions returns exceptions with from <= date <= to; zero bounds are open.
func (r *AvailabilityGormRepository) ListExceptions(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.DateException, error) {

	q := r.db.WithContext(ctx)
	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", to)
	}

	var out []models.DateException
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AvailabilityGormRepository) GetExceptionByID(
	ctx context.Context,
	id uint,
) (*models.DateException, error) {

	var e models.DateException
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &e, nil
}

func (r *AvailabilityGormRepository) GetExceptionForDate(
	ctx context.Context,
	date time.Time,
) (*models.DateException, error) {

	var e models.DateException
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		First(&e).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &e, nil
}

func (r *AvailabilityGormRepository) CreateException(
	ctx context.Context,
	e *models.DateException,
) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("exception_exists")
	}
	return err
}

func (r *AvailabilityGormRepository) UpdateException(
	ctx context.Context,
	e *models.DateException,
) error {
	err := r.db.WithContext(ctx).Save(e).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("exception_exists")
	}
	return err
}

func (r *AvailabilityGormRepository) DeleteException(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.DateException{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("exception_not_found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)

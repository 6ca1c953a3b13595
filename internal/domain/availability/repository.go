package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Repository stores weekly rules and date exceptions. Lookups that find
// nothing return (nil, nil); uniqueness per weekday and per date is enforced
// on create and reported as httperr business codes.
type Repository interface {
	// -------- Weekly --------
	ListWeekly(ctx context.Context) ([]models.WeeklyAvailability, error)

	GetWeeklyByID(
		ctx context.Context,
		id uint,
	) (*models.WeeklyAvailability, error)

	GetWeeklyForDay(
		ctx context.Context,
		dayOfWeek int,
	) (*models.WeeklyAvailability, error)

	CreateWeekly(ctx context.Context, w *models.WeeklyAvailability) error
	UpdateWeekly(ctx context.Context, w *models.WeeklyAvailability) error
	DeleteWeekly(ctx context.Context, id uint) error

	// -------- Exceptions --------
	ListExceptions(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.DateException, error)

	GetExceptionByID(
		ctx context.Context,
		id uint,
	) (*models.DateException, error)

	GetExceptionForDate(
		ctx context.Context,
		date time.Time,
	) (*models.DateException, error)

	CreateException(ctx context.Context, e *models.DateException) error
	UpdateException(ctx context.Context, e *models.DateException) error
	DeleteException(ctx context.Context, id uint) error
}

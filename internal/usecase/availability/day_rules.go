package availability

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// DayRules is what the availability store knows about one date.
type DayRules struct {
	Weekly    *models.WeeklyAvailability
	Exception *models.DateException
}

// LoadDayRules fetches the weekly record for date's weekday and the
// exception for date, either of which may be nil. date must be a DateOnly value.
func LoadDayRules(
	ctx context.Context,
	repo domain.Repository,
	date time.Time,
) (DayRules, error) {

	weekly, err := repo.GetWeeklyForDay(ctx, int(date.Weekday()))
	if err != nil {
		return DayRules{}, err
	}

	exc, err := repo.GetExceptionForDate(ctx, date)
	if err != nil {
		return DayRules{}, err
	}

	return DayRules{Weekly: weekly, Exception: exc}, nil
}

func (r DayRules) Slots(
	date time.Time,
	durationMin int,
	stepMin int,
	booked []domain.BookedInterval,
) (domain.Result, error) {
	return domain.GenerateSlots(domain.Input{
		Date:                   date,
		Weekly:                 r.Weekly,
		Exception:              r.Exception,
		Appointments:           booked,
		ServiceDurationMinutes: durationMin,
		StepMinutes:            stepMin,
	})
}

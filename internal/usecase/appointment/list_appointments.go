package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// listPeriod loads [from, to) ordered by date and time.
func listPeriod(
	ctx context.Context,
	repo domain.Repository,
	from, to time.Time,
) ([]dto.AppointmentListDTO, error) {
	rows, err := repo.ListAppointmentsForPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(rows), nil
}

// ======================================================
// BY DATE
// ======================================================

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

// Execute returns every appointment on the calendar day of date, cancelled included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {
	day := timezone.DateOnly(date)
	return listPeriod(ctx, uc.repo, day, day.AddDate(0, 0, 1))
}

// ======================================================
// BY MONTH
// ======================================================

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {
	if year < 2000 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return listPeriod(ctx, uc.repo, first, first.AddDate(0, 1, 0))
}

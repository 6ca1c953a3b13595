package availability

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type WeeklyInput struct {
	DayOfWeek  int
	StartTime  string
	EndTime    string
	IsActive   bool
	BreakTimes []models.BreakTime
}

func (in WeeklyInput) apply(w *models.WeeklyAvailability) {
	w.DayOfWeek = in.DayOfWeek
	w.StartTime = in.StartTime
	w.EndTime = in.EndTime
	w.IsActive = in.IsActive
	w.BreakTimes = in.BreakTimes
	if w.BreakTimes == nil {
		w.BreakTimes = []models.BreakTime{}
	}
}

// ManageWeekly is the admin side of the weekly schedule.
type ManageWeekly struct {
	repo  domain.Repository
	cache SlotCache
	audit Auditor
}

func NewManageWeekly(
	repo domain.Repository,
	cache SlotCache,
	audit Auditor,
) *ManageWeekly {
	return &ManageWeekly{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *ManageWeekly) List(ctx context.Context) ([]models.WeeklyAvailability, error) {
	return uc.repo.ListWeekly(ctx)
}

func (uc *ManageWeekly) Create(
	ctx context.Context,
	userID uint,
	in WeeklyInput,
) (*models.WeeklyAvailability, error) {

	w := &models.WeeklyAvailability{}
	in.apply(w)

	if err := domain.ValidateWeekly(w); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetWeeklyForDay(ctx, w.DayOfWeek)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusiness("weekday_taken")
	}

	if err := uc.repo.CreateWeekly(ctx, w); err != nil {
		return nil, err
	}

	uc.changed(ctx, userID, "weekly_availability_created", w.ID, w)
	return w, nil
}

func (uc *ManageWeekly) Update(
	ctx context.Context,
	userID uint,
	id uint,
	in WeeklyInput,
) (*models.WeeklyAvailability, error) {

	w, err := uc.repo.GetWeeklyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, httperr.ErrBusiness("weekly_not_found")
	}

	in.apply(w)
	if err := domain.ValidateWeekly(w); err != nil {
		return nil, err
	}

	other, err := uc.repo.GetWeeklyForDay(ctx, w.DayOfWeek)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != w.ID {
		return nil, httperr.ErrBusiness("weekday_taken")
	}

	if err := uc.repo.UpdateWeekly(ctx, w); err != nil {
		return nil, err
	}

	uc.changed(ctx, userID, "weekly_availability_updated", w.ID, w)
	return w, nil
}

func (uc *ManageWeekly) Delete(ctx context.Context, userID uint, id uint) error {
	if err := uc.repo.DeleteWeekly(ctx, id); err != nil {
		return err
	}

	uc.changed(ctx, userID, "weekly_availability_deleted", id, nil)
	return nil
}

func (uc *ManageWeekly) changed(ctx context.Context, userID uint, action string, id uint, meta any) {
	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "weekly_availability",
		EntityID: &id,
		Metadata: meta,
	})
}

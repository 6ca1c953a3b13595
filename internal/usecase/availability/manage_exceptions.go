package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type ExceptionInput struct {
	Date      time.Time
	Type      models.ExceptionType
	StartTime string
	EndTime   string
	Reason    string
}

func (in ExceptionInput) apply(e *models.DateException) {
	e.Date = timezone.DateOnly(in.Date)
	e.Type = in.Type
	e.Reason = in.Reason

	// Hours only mean something for custom_hours.
	if in.Type == models.ExceptionCustomHours {
		e.StartTime = in.StartTime
		e.EndTime = in.EndTime
	} else {
		e.StartTime = ""
		e.EndTime = ""
	}
}

type ManageExceptions struct {
	repo  domain.Repository
	cache SlotCache
	audit Auditor
}

func NewManageExceptions(
	repo domain.Repository,
	cache SlotCache,
	audit Auditor,
) *ManageExceptions {
	return &ManageExceptions{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// List returns exceptions between from and to inclusive; zero bounds are open.
func (uc *ManageExceptions) List(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.DateException, error) {
	if !from.IsZero() {
		from = timezone.DateOnly(from)
	}
	if !to.IsZero() {
		to = timezone.DateOnly(to)
	}
	return uc.repo.ListExceptions(ctx, from, to)
}

func (uc *ManageExceptions) Create(
	ctx context.Context,
	userID uint,
	in ExceptionInput,
) (*models.DateException, error) {

	e := &models.DateException{}
	in.apply(e)

	if err := domain.ValidateException(e); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetExceptionForDate(ctx, e.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusiness("exception_exists")
	}

	if err := uc.repo.CreateException(ctx, e); err != nil {
		return nil, err
	}

	uc.changed(ctx, userID, "date_exception_created", e.ID, e)
	return e, nil
}

func (uc *ManageExceptions) Update(
	ctx context.Context,
	userID uint,
	id uint,
	in ExceptionInput,
) (*models.DateException, error) {

	e, err := uc.repo.GetExceptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, httperr.ErrBusiness("exception_not_found")
	}

	in.apply(e)
	if err := domain.ValidateException(e); err != nil {
		return nil, err
	}

	other, err := uc.repo.GetExceptionForDate(ctx, e.Date)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != e.ID {
		return nil, httperr.ErrBusiness("exception_exists")
	}

	if err := uc.repo.UpdateException(ctx, e); err != nil {
		return nil, err
	}

	uc.changed(ctx, userID, "date_exception_updated", e.ID, e)
	return e, nil
}

func (uc *ManageExceptions) Delete(ctx context.Context, userID uint, id uint) error {
	if err := uc.repo.DeleteException(ctx, id); err != nil {
		return err
	}

	uc.changed(ctx, userID, "date_exception_deleted", id, nil)
	return nil
}

func (uc *ManageExceptions) changed(ctx context.Context, userID uint, action string, id uint, meta any) {
	uc.cache.Invalidate(ctx)
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "date_exception",
		EntityID: &id,
		Metadata: meta,
	})
}

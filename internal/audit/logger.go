package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Store persists audit entries. GormStore and MongoStore implement it.
type Store interface {
	Save(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Logger {
	return &Logger{store: store, now: time.Now}
}

// Log saves ev. Metadata that cannot be encoded is left empty on the stored
// entry and reported in the returned error.
func (l *Logger) Log(ctx context.Context, ev Event) error {
	var (
		metaJSON string
		encErr   error
	)
	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			encErr = fmt.Errorf("encode audit metadata for %s: %w", ev.Action, err)
		} else {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: l.now(),
	}

	if err := l.store.Save(ctx, &entry); err != nil {
		return errors.Join(encErr, err)
	}
	return encErr
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	return l.store.List(ctx, f)
}

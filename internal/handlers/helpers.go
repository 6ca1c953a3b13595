package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// parseDateInClinic reads YYYY-MM-DD in the clinic zone.
func parseDateInClinic(tz, s string) (time.Time, error) {
	return timezone.ParseDate(tz, s)
}

// writeError maps use case errors to responses; unexpected errors are
// attached to the context for the request logger.
func writeError(c *gin.Context, err error, fallbackCode string) {
	if availability.IsFormatError(err) {
		httperr.BadRequest(c, "invalid_time_format", err.Error())
		return
	}
	if _, ok := httperr.BusinessCode(err); !ok {
		_ = c.Error(err)
	}
	httperr.FromError(c, err, fallbackCode)
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}

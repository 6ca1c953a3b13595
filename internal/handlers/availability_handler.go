package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	weekly     *ucAvailability.ManageWeekly
	exceptions *ucAvailability.ManageExceptions
	timezone   string
}

func NewAvailabilityHandler(
	weekly *ucAvailability.ManageWeekly,
	exceptions *ucAvailability.ManageExceptions,
	tz string,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		weekly:     weekly,
		exceptions: exceptions,
		timezone:   tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WeeklyRequest struct {
	DayOfWeek  *int               `json:"day_of_week" binding:"required"`
	StartTime  string             `json:"start_time" binding:"required"`
	EndTime    string             `json:"end_time" binding:"required"`
	IsActive   *bool              `json:"is_active"`
	BreakTimes []models.BreakTime `json:"break_times"`
}

func (r WeeklyRequest) input() ucAvailability.WeeklyInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return ucAvailability.WeeklyInput{
		DayOfWeek:  *r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		IsActive:   active,
		BreakTimes: r.BreakTimes,
	}
}

type ExceptionRequest struct {
	Date      string               `json:"date" binding:"required"`
	Type      models.ExceptionType `json:"type" binding:"required"`
	StartTime string               `json:"start_time"`
	EndTime   string               `json:"end_time"`
	Reason    string               `json:"reason"`
}

// ======================================================
// WEEKLY
// ======================================================

func (h *AvailabilityHandler) ListWeekly(c *gin.Context) {
	out, err := h.weekly.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_list_weekly")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AvailabilityHandler) CreateWeekly(c *gin.Context) {
	var req WeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	w, err := h.weekly.Create(c.Request.Context(), currentUserID(c), req.input())
	if err != nil {
		writeError(c, err, "failed_to_create_weekly")
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *AvailabilityHandler) UpdateWeekly(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req WeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	w, err := h.weekly.Update(c.Request.Context(), currentUserID(c), id, req.input())
	if err != nil {
		writeError(c, err, "failed_to_update_weekly")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *AvailabilityHandler) DeleteWeekly(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.weekly.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		writeError(c, err, "failed_to_delete_weekly")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *AvailabilityHandler) ListExceptions(c *gin.Context) {
	var from, to time.Time
	var err error

	if s := c.Query("from"); s != "" {
		if from, err = parseDateInClinic(h.timezone, s); err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = parseDateInClinic(h.timezone, s); err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return
		}
	}

	out, err := h.exceptions.List(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err, "failed_to_list_exceptions")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AvailabilityHandler) exceptionInput(c *gin.Context) (ucAvailability.ExceptionInput, bool) {
	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return ucAvailability.ExceptionInput{}, false
	}

	date, err := parseDateInClinic(h.timezone, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return ucAvailability.ExceptionInput{}, false
	}

	return ucAvailability.ExceptionInput{
		Date:      date,
		Type:      req.Type,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}, true
}

func (h *AvailabilityHandler) CreateException(c *gin.Context) {
	in, ok := h.exceptionInput(c)
	if !ok {
		return
	}

	e, err := h.exceptions.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		writeError(c, err, "failed_to_create_exception")
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *AvailabilityHandler) UpdateException(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	in, ok := h.exceptionInput(c)
	if !ok {
		return
	}

	e, err := h.exceptions.Update(c.Request.Context(), currentUserID(c), id, in)
	if err != nil {
		writeError(c, err, "failed_to_update_exception")
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *AvailabilityHandler) DeleteException(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.exceptions.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		writeError(c, err, "failed_to_delete_exception")
		return
	}
	c.Status(http.StatusNoContent)
}

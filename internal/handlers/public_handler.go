package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	slots    *ucAvailability.GetSlots
	create   *ucAppointment.CreateAppointment
	cancel   *ucAppointment.CancelAppointment
	timezone string
}

func NewPublicHandler(
	slots *ucAvailability.GetSlots,
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
	tz string,
) *PublicHandler {
	return &PublicHandler{
		slots:    slots,
		create:   create,
		cancel:   cancel,
		timezone: tz,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCancelRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type slotsResponse struct {
	Date      string `json:"date"`
	ServiceID uint   `json:"service_id"`
	availability.Result
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "date and service_id are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service_id.")
		return
	}

	date, err := parseDateInClinic(h.timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	res, err := h.slots.Execute(c.Request.Context(), date, uint(serviceID))
	if err != nil {
		writeError(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, slotsResponse{
		Date:      dateStr,
		ServiceID: uint(serviceID),
		Result:    res,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	req, ok := bindCreateRequest(c)
	if !ok {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req.input(nil))
	if err != nil {
		writeError(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.cancel.ByPatient(c.Request.Context(), id, req.Email)
	if err != nil {
		writeError(c, err, "failed_to_cancel_appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     ap.ID,
		"status": ap.Status,
	})
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateAppointment
	confirm     *ucAppointment.ConfirmAppointment
	complete    *ucAppointment.CompleteAppointment
	cancel      *ucAppointment.CancelAppointment
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	timezone    string
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		confirm:     confirm,
		complete:    complete,
		cancel:      cancel,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		timezone:    tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email" binding:"omitempty,email"`
	ServiceID    uint   `json:"service_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes" binding:"max=255"`
}

func (r CreateAppointmentRequest) input(userID *uint) ucAppointment.CreateAppointmentInput {
	return ucAppointment.CreateAppointmentInput{
		PatientName:  strings.TrimSpace(r.PatientName),
		PatientPhone: validators.NormalizePhone(r.PatientPhone),
		PatientEmail: validators.NormalizeEmail(r.PatientEmail),
		ServiceID:    r.ServiceID,
		Date:         r.Date,
		Time:         r.Time,
		Notes:        r.Notes,
		UserID:       userID,
	}
}

func bindCreateRequest(c *gin.Context) (CreateAppointmentRequest, bool) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return req, false
	}
	if !validators.IsPhoneValid(req.PatientPhone) {
		httperr.BadRequest(c, "invalid_phone", "patient_phone must have 8 to 15 digits.")
		return req, false
	}
	return req, true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	req, ok := bindCreateRequest(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	ap, err := h.create.Execute(c.Request.Context(), req.input(&userID))
	if err != nil {
		writeError(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

// ListByDate defaults to today in the clinic zone.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := timezone.NowIn(h.timezone)

	if s := c.Query("date"); s != "" {
		d, err := parseDateInClinic(h.timezone, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
			return
		}
		date = d
	}

	out, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         date.Format("2006-01-02"),
		"appointments": out,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	now := timezone.NowIn(h.timezone)
	year, month := now.Year(), int(now.Month())

	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_year", "year must be a number.")
			return
		}
		year = v
	}
	if s := c.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_month", "month must be a number.")
			return
		}
		month = v
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        time.Month(month).String(),
		"appointments": out,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err, "failed_to_confirm_appointment")
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err, "failed_to_cancel_appointment")
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err, "failed_to_complete_appointment")
		return
	}
	c.JSON(http.StatusOK, ap)
}

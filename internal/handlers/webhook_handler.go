package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const HeaderWebhookToken = "X-Webhook-Token"

type WebhookHandler struct {
	sync   *ucAppointment.SyncExternalBooking
	secret string
}

// NewWebhookHandler leaves the endpoint open when secret is empty.
func NewWebhookHandler(sync *ucAppointment.SyncExternalBooking, secret string) *WebhookHandler {
	return &WebhookHandler{sync: sync, secret: secret}
}

type webhookPatient struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

type WebhookRequest struct {
	Event      string         `json:"event" binding:"required"`
	ExternalID string         `json:"external_id" binding:"required"`
	ServiceID  uint           `json:"service_id"`
	Date       string         `json:"date"`
	Time       string         `json:"time"`
	Patient    webhookPatient `json:"patient"`
}

func (h *WebhookHandler) authorized(c *gin.Context) bool {
	if h.secret == "" {
		return true
	}
	got := c.GetHeader(HeaderWebhookToken)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

func (h *WebhookHandler) Scheduling(c *gin.Context) {
	if !h.authorized(c) {
		httperr.Unauthorized(c, "invalid_webhook_token", "Invalid webhook token.")
		return
	}

	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.sync.Execute(c.Request.Context(), ucAppointment.ExternalBookingInput{
		Event:        req.Event,
		ExternalID:   req.ExternalID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		PatientName:  strings.TrimSpace(req.Patient.Name),
		PatientEmail: validators.NormalizeEmail(req.Patient.Email),
		PatientPhone: validators.NormalizePhone(req.Patient.Phone),
	})
	if err != nil {
		writeError(c, err, "webhook_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"appointment_id": ap.ID,
		"state":          ap.Status,
	})
}

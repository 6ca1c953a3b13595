package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

type mapped struct {
	status  int
	message string
}

var businessStatus = map[string]mapped{
	"service_not_found":     {http.StatusNotFound, "Service not found."},
	"appointment_not_found": {http.StatusNotFound, "Appointment not found."},
	"weekly_not_found":      {http.StatusNotFound, "Weekly availability not found."},
	"exception_not_found":   {http.StatusNotFound, "Date exception not found."},
	"invalid_state":         {http.StatusConflict, "Appointment cannot change to this state."},
	"time_conflict":         {http.StatusConflict, "Time slot already taken."},
	"slot_unavailable":      {http.StatusConflict, "Requested time is not available."},
	"weekday_taken":         {http.StatusConflict, "Availability for this weekday already exists."},
	"exception_exists":      {http.StatusConflict, "An exception for this date already exists."},
	"too_soon":              {http.StatusBadRequest, "Requested time is too soon."},
	"too_late_to_cancel":    {http.StatusBadRequest, "Appointment can no longer be cancelled."},
	"invalid_date_or_time":  {http.StatusBadRequest, "Invalid date or time."},
	"invalid_time_format":   {http.StatusBadRequest, "Invalid time configuration."},
	"email_mismatch":        {http.StatusForbidden, "Email does not match the appointment."},
	"missing_external_id":   {http.StatusBadRequest, "external_id is required."},
	"unknown_event":         {http.StatusBadRequest, "Unsupported webhook event."},
	"missing_patient":       {http.StatusBadRequest, "Patient name and phone are required."},
}

// FromError writes err using the business-code table, falling back to a
// generic 500 with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	if code, ok := BusinessCode(err); ok {
		if m, found := businessStatus[code]; found {
			Write(c, m.status, code, m.message)
			return
		}
		BadRequest(c, code, code)
		return
	}
	Internal(c, fallbackCode, "Unexpected error.")
}

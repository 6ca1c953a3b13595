package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/mocks"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

const tz = "America/Sao_Paulo"

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

var policy = ucAppointment.Policy{
	Timezone:           tz,
	MinAdvance:         2 * time.Hour,
	CancellationCutoff: 24 * time.Hour,
	StepMinutes:        30,
}

type deps struct {
	repo   *mocks.AppointmentRepository
	avail  *mocks.AvailabilityRepository
	cache  *mocks.SlotCache
	audit  *mocks.Auditor
	notify *mocks.Notifier
}

func newDeps() deps {
	d := deps{
		repo:   new(mocks.AppointmentRepository),
		avail:  new(mocks.AvailabilityRepository),
		cache:  new(mocks.SlotCache),
		audit:  new(mocks.Auditor),
		notify: new(mocks.Notifier),
	}
	d.cache.On("Invalidate").Return()
	d.audit.On("Dispatch", mock.Anything).Return()
	d.notify.On("AppointmentEvent", mock.Anything, mock.Anything).Return()
	return d
}

func (d deps) router() *gin.Engine {
	gin.SetMode(gin.TestMode)

	create := ucAppointment.NewCreateAppointment(d.repo, d.avail, d.cache, d.audit, d.notify, policy)
	cancel := ucAppointment.NewCancelAppointment(d.repo, d.cache, d.audit, d.notify, policy)
	slots := ucAvailability.NewGetSlots(d.avail, d.repo, d.cache, ucAvailability.SlotPolicy{
		StepMinutes: policy.StepMinutes,
		Timezone:    tz,
		MinAdvance:  policy.MinAdvance,
	}).WithClock(func() time.Time { return monday.AddDate(0, 0, -7) })

	public := NewPublicHandler(slots, create, cancel, tz)
	webhook := NewWebhookHandler(ucAppointment.NewSyncExternalBooking(create, cancel), "s3cret")
	avail := NewAvailabilityHandler(
		ucAvailability.NewManageWeekly(d.avail, d.cache, d.audit),
		ucAvailability.NewManageExceptions(d.avail, d.cache, d.audit),
		tz,
	)

	r := gin.New()
	r.GET("/api/public/slots", public.Slots)
	r.POST("/api/public/appointments", public.CreateAppointment)
	r.POST("/api/webhooks/scheduling", webhook.Scheduling)

	admin := r.Group("/api/admin")
	admin.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(1))
		c.Next()
	})
	admin.POST("/availability/weekly", avail.CreateWeekly)
	admin.POST("/availability/exceptions", avail.CreateException)
	return r
}

func do(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// ======================================================
// PUBLIC SLOTS
// ======================================================

func TestSlots_MissingParams(t *testing.T) {
	w := do(newDeps().router(), http.MethodGet, "/api/public/slots?date=2026-10-19", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_params", errorCode(t, w))
}

func TestSlots_ReturnsGrid(t *testing.T) {
	d := newDeps()
	d.repo.On("GetService", uint(3)).Return(&models.Service{ID: 3, DurationMin: 60, Active: true}, nil)
	d.cache.On("Get", monday, 60).Return(nil, int64(0), false)
	d.cache.On("Set", int64(0), monday, 60, mock.Anything).Return()
	d.avail.On("GetWeeklyForDay", 1).Return(&models.WeeklyAvailability{
		DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", IsActive: true,
	}, nil)
	d.avail.On("GetExceptionForDate", monday).Return(nil, nil)
	d.repo.On("ListActiveForDate", monday).Return([]models.Appointment{}, nil)

	w := do(d.router(), http.MethodGet, "/api/public/slots?date=2026-10-19&service_id=3", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"date": "2026-10-19",
		"service_id": 3,
		"slots": [
			{"time": "09:00", "displayTime": "09:00"},
			{"time": "09:30", "displayTime": "09:30"},
			{"time": "10:00", "displayTime": "10:00"}
		]
	}`, w.Body.String())
}

func TestSlots_ClosedDayCarriesReason(t *testing.T) {
	d := newDeps()
	d.repo.On("GetService", uint(3)).Return(&models.Service{ID: 3, DurationMin: 30, Active: true}, nil)
	d.cache.On("Get", monday, 30).Return(nil, int64(0), false)
	d.cache.On("Set", int64(0), monday, 30, mock.Anything).Return()
	d.avail.On("GetWeeklyForDay", 1).Return(nil, nil)
	d.avail.On("GetExceptionForDate", monday).Return(nil, nil)
	d.repo.On("ListActiveForDate", monday).Return([]models.Appointment{}, nil)

	w := do(d.router(), http.MethodGet, "/api/public/slots?date=2026-10-19&service_id=3", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no_availability", body["reason"])
	assert.Equal(t, []any{}, body["slots"])
}

func TestSlots_UnknownService(t *testing.T) {
	d := newDeps()
	d.repo.On("GetService", uint(8)).Return(nil, nil)

	w := do(d.router(), http.MethodGet, "/api/public/slots?date=2026-10-19&service_id=8", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "service_not_found", errorCode(t, w))
}

// ======================================================
// PUBLIC BOOKING
// ======================================================

func TestPublicCreate_RejectsBadPhone(t *testing.T) {
	w := do(newDeps().router(), http.MethodPost, "/api/public/appointments", gin.H{
		"patient_name":  "Ana",
		"patient_phone": "123",
		"service_id":    3,
		"date":          "2026-10-19",
		"time":          "09:00",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_phone", errorCode(t, w))
}

func TestPublicCreate_RejectsBadEmail(t *testing.T) {
	w := do(newDeps().router(), http.MethodPost, "/api/public/appointments", gin.H{
		"patient_name":  "Ana",
		"patient_phone": "+5511999990000",
		"patient_email": "not-an-email",
		"service_id":    3,
		"date":          "2026-10-19",
		"time":          "09:00",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))
}

// ======================================================
// WEBHOOK
// ======================================================

func TestWebhook_RejectsWrongToken(t *testing.T) {
	w := do(newDeps().router(), http.MethodPost, "/api/webhooks/scheduling",
		gin.H{"event": "booking.cancelled", "external_id": "ext-1"},
		map[string]string{HeaderWebhookToken: "nope"},
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhook_RejectsMalformedPatientEmail(t *testing.T) {
	d := newDeps()
	w := do(d.router(), http.MethodPost, "/api/webhooks/scheduling", gin.H{
		"event":       "booking.created",
		"external_id": "ext-2",
		"service_id":  3,
		"date":        "2026-10-19",
		"time":        "09:00",
		"patient": gin.H{
			"name":  "Ana",
			"phone": "+5511999990000",
			"email": "not-an-email",
		},
	}, map[string]string{HeaderWebhookToken: "s3cret"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))
	d.repo.AssertNotCalled(t, "GetAppointmentByExternalID", mock.Anything)
}

func TestWebhook_CancelsByExternalID(t *testing.T) {
	d := newDeps()
	ap := &models.Appointment{ID: 5, Date: monday, Time: "09:00", Status: "confirmed"}
	d.repo.On("GetAppointmentByExternalID", "ext-1").Return(ap, nil)
	d.repo.On("UpdateAppointment", ap).Return(nil)

	w := do(d.router(), http.MethodPost, "/api/webhooks/scheduling",
		gin.H{"event": "booking.cancelled", "external_id": "ext-1"},
		map[string]string{HeaderWebhookToken: "s3cret"},
	)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","appointment_id":5,"state":"cancelled"}`, w.Body.String())
}

// ======================================================
// ADMIN AVAILABILITY
// ======================================================

func TestCreateWeekly_FormatError(t *testing.T) {
	w := do(newDeps().router(), http.MethodPost, "/api/admin/availability/weekly", gin.H{
		"day_of_week": 1,
		"start_time":  "9:00",
		"end_time":    "18:00",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_time_format", errorCode(t, w))
}

func TestCreateWeekly_SundayIsAccepted(t *testing.T) {
	d := newDeps()
	d.avail.On("GetWeeklyForDay", 0).Return(nil, nil)
	d.avail.On("CreateWeekly", mock.Anything).Return(nil)

	w := do(d.router(), http.MethodPost, "/api/admin/availability/weekly", gin.H{
		"day_of_week": 0,
		"start_time":  "08:00",
		"end_time":    "12:00",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.WeeklyAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0, got.DayOfWeek)
	assert.True(t, got.IsActive)
}

func TestCreateException_Duplicate(t *testing.T) {
	d := newDeps()
	d.avail.On("GetExceptionForDate", monday).Return(&models.DateException{ID: 2}, nil)

	w := do(d.router(), http.MethodPost, "/api/admin/availability/exceptions", gin.H{
		"date":   "2026-10-19",
		"type":   "unavailable",
		"reason": "Holiday",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "exception_exists", errorCode(t, w))
}

// ======================================================
// AUDIT LOGS
// ======================================================

type fakeAuditReader struct {
	got audit.Filter
}

func (f *fakeAuditReader) List(_ context.Context, filter audit.Filter) ([]models.AuditLog, int64, error) {
	f.got = filter
	return []models.AuditLog{{Action: "appointment_created"}}, 41, nil
}

func TestAuditLogs_ParsesFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader := &fakeAuditReader{}
	r := gin.New()
	r.GET("/logs", NewAuditLogsHandler(reader).List)

	w := do(r, http.MethodGet, "/logs?action=appointment_created&page=3&limit=500&from=2026-10-01&to=2026-10-19", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "appointment_created", reader.got.Action)
	assert.Equal(t, 3, reader.got.Page)
	assert.Equal(t, 50, reader.got.Limit)
	require.NotNil(t, reader.got.From)
	require.NotNil(t, reader.got.To)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), *reader.got.To)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 41, body["total"])
}

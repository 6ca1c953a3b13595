package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

func registered(cfg *config.Config) map[string]bool {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, Deps{Config: cfg, SlotCache: cache.Nop{}})

	out := map[string]bool{}
	for _, rt := range r.Routes() {
		out[rt.Method+" "+rt.Path] = true
	}
	return out
}

func TestWebhookEnabled(t *testing.T) {
	cases := []struct {
		name   string
		env    string
		secret string
		want   bool
	}{
		{"development without secret", "development", "", true},
		{"production with secret", "production", "s3cret", true},
		{"production without secret", "production", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Env: tc.env, WebhookSecret: tc.secret}
			assert.Equal(t, tc.want, WebhookEnabled(cfg))
			assert.Equal(t, tc.want, registered(cfg)[http.MethodPost+" /api/webhooks/scheduling"])
		})
	}
}

func TestRegisterRoutes_Surface(t *testing.T) {
	got := registered(&config.Config{Env: "development", ClinicTimezone: "America/Sao_Paulo"})

	for _, route := range []string{
		"GET /health",
		"POST /api/auth/login",
		"GET /api/public/slots",
		"POST /api/public/appointments",
		"POST /api/public/appointments/:id/cancel",
		"GET /api/admin/availability/weekly",
		"DELETE /api/admin/availability/exceptions/:id",
		"PATCH /api/admin/appointments/:id/complete",
		"GET /api/admin/audit-logs",
	} {
		assert.True(t, got[route], route)
	}
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Audit     *audit.Dispatcher
	AuditLog  *audit.Logger
	Notifier  ucAppointment.Notifier
	SlotCache ucAvailability.SlotCache
	Images    storage.ImageStore
}

// WebhookEnabled reports whether the scheduling webhook is exposed. In
// production it requires WEBHOOK_SECRET.
func WebhookEnabled(cfg *config.Config) bool {
	return cfg.WebhookSecret != "" || !cfg.IsProduction()
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)
	policy := ucAppointment.PolicyFromConfig(cfg)

	// ======================================================
	// USE CASES - AVAILABILITY
	// ======================================================
	getSlotsUC := ucAvailability.NewGetSlots(
		availabilityRepo,
		appointmentRepo,
		d.SlotCache,
		ucAvailability.SlotPolicy{
			StepMinutes: policy.StepMinutes,
			Timezone:    policy.Timezone,
			MinAdvance:  policy.MinAdvance,
		},
	)
	manageWeeklyUC := ucAvailability.NewManageWeekly(availabilityRepo, d.SlotCache, d.Audit)
	manageExceptionsUC := ucAvailability.NewManageExceptions(availabilityRepo, d.SlotCache, d.Audit)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		availabilityRepo,
		d.SlotCache,
		d.Audit,
		d.Notifier,
		policy,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		d.SlotCache,
		d.Audit,
		d.Notifier,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		d.SlotCache,
		d.Audit,
		d.Notifier,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		d.SlotCache,
		d.Audit,
		d.Notifier,
		policy,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	syncExternalUC := ucAppointment.NewSyncExternalBooking(createAppointmentUC, cancelAppointmentUC)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB, cfg)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Images, d.Audit)
	patientHandler := handlers.NewPatientHandler(d.DB)
	availabilityHandler := handlers.NewAvailabilityHandler(manageWeeklyUC, manageExceptionsUC, cfg.ClinicTimezone)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		cfg.ClinicTimezone,
	)

	publicHandler := handlers.NewPublicHandler(
		getSlotsUC,
		createAppointmentUC,
		cancelAppointmentUC,
		cfg.ClinicTimezone,
	)

	webhookHandler := handlers.NewWebhookHandler(syncExternalUC, cfg.WebhookSecret)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", serviceHandler.PublicList)
			publicAPI.GET("/slots", publicHandler.Slots)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.POST("/appointments/:id/cancel", publicHandler.CancelAppointment)
		}

		if WebhookEnabled(cfg) {
			api.POST("/webhooks/scheduling", webhookHandler.Scheduling)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/me", meHandler.GetMe)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.POST("/services/:id/image", serviceHandler.UploadImage)

			admin.GET("/availability/weekly", availabilityHandler.ListWeekly)
			admin.POST("/availability/weekly", availabilityHandler.CreateWeekly)
			admin.PUT("/availability/weekly/:id", availabilityHandler.UpdateWeekly)
			admin.DELETE("/availability/weekly/:id", availabilityHandler.DeleteWeekly)

			admin.GET("/availability/exceptions", availabilityHandler.ListExceptions)
			admin.POST("/availability/exceptions", availabilityHandler.CreateException)
			admin.PUT("/availability/exceptions/:id", availabilityHandler.UpdateException)
			admin.DELETE("/availability/exceptions/:id", availabilityHandler.DeleteException)

			admin.GET("/patients", patientHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			admin.POST("/appointments", appointmentHandler.Create)
			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

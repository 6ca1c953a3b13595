package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewMeHandler(db *gorm.DB, cfg *config.Config) *MeHandler {
	return &MeHandler{db: db, cfg: cfg}
}

// clinicSettings are the booking rules the admin UI needs to mirror.
type clinicSettings struct {
	Timezone                string `json:"timezone"`
	MinAdvanceMinutes       int    `json:"min_advance_minutes"`
	CancellationCutoffHours int    `json:"cancellation_cutoff_hours"`
	SlotStepMinutes         int    `json:"slot_step_minutes"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		First(&user, currentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_get_user", "Could not load the user.")
		return
	}

	httpresp.OK(c, gin.H{
		"user": userPayload(&user),
		"clinic": clinicSettings{
			Timezone:                h.cfg.ClinicTimezone,
			MinAdvanceMinutes:       h.cfg.MinAdvanceMinutes,
			CancellationCutoffHours: h.cfg.CancellationCutoffHours,
			SlotStepMinutes:         h.cfg.SlotStepMinutes,
		},
	})
}

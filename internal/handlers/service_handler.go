package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

const maxImageUpload = 5 << 20

type ServiceHandler struct {
	db     *gorm.DB
	images storage.ImageStore
	audit  Auditor
}

// NewServiceHandler accepts a nil image store; uploads then answer 503.
func NewServiceHandler(db *gorm.DB, images storage.ImageStore, audit Auditor) *ServiceHandler {
	return &ServiceHandler{db: db, images: images, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

func validDuration(min int) bool {
	return min >= models.MinServiceDuration && min <= models.MaxServiceDuration
}

func durationError(c *gin.Context) {
	httperr.BadRequest(c, "invalid_duration", fmt.Sprintf(
		"duration_min must be between %d and %d.",
		models.MinServiceDuration, models.MaxServiceDuration,
	))
}

// --------- Handlers ---------

func (h *ServiceHandler) filtered(c *gin.Context, q *gorm.DB) *gorm.DB {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	return q
}

// PublicList returns only active services.
func (h *ServiceHandler) PublicList(c *gin.Context) {
	q := h.filtered(c, h.db.Where("active = ?", true))

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.filtered(c, h.db.Model(&models.Service{}))

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if !validDuration(req.DurationMin) {
		durationError(c)
		return
	}

	svc := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
		Category:    strings.ToLower(req.Category),
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	h.dispatch(c, "service_created", svc.ID, req)
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load the service.")
		return nil, false
	}
	return &svc, true
}

func (h *ServiceHandler) Update(c *gin.Context) {
	svc, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if !validDuration(*req.DurationMin) {
			durationError(c)
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "price must not be negative.")
			return
		}
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.Category != nil {
		svc.Category = strings.ToLower(*req.Category)
	}

	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	h.dispatch(c, "service_updated", svc.ID, req)
	c.JSON(http.StatusOK, svc)
}

// UploadImage takes a multipart "image" field, converts it to WebP and
// stores it as the service picture.
func (h *ServiceHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "image_storage_disabled", "Image storage is not configured.")
		return
	}

	svc, ok := h.load(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Multipart field \"image\" is required.")
		return
	}
	if file.Size > maxImageUpload {
		httperr.BadRequest(c, "image_too_large", "Image must be at most 5MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not read the upload.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxImageUpload))
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not read the upload.")
		return
	}

	webpData, err := storage.ToWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Image must be PNG, JPEG or WebP.")
		return
	}

	url, err := h.images.PutImage(c.Request.Context(), "services", webpData, "image/webp")
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_store_image", "Could not store the image.")
		return
	}

	svc.ImageURL = url
	if err := h.db.Model(svc).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	h.dispatch(c, "service_image_uploaded", svc.ID, gin.H{"image_url": url})
	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, id uint, meta any) {
	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "service",
		EntityID: &id,
		Metadata: meta,
	})
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type announcementService interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, form dto.AnnouncementForm) (*models.Announcement, error)
	Update(ctx context.Context, announcementID string, form dto.AnnouncementForm) (*models.Announcement, error)
	Delete(ctx context.Context, announcementID string) error
}

// AnnouncementHandler serves admin announcement management.
type AnnouncementHandler struct {
	service announcementService
	co      *Coordinator
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service announcementService, co *Coordinator) *AnnouncementHandler {
	return &AnnouncementHandler{service: service, co: co}
}

func (h *AnnouncementHandler) respondList(c *gin.Context) {
	announcements, err := h.service.List(c.Request.Context())
	if err != nil {
		h.co.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, announcements)
}

// List godoc
// @Summary List announcements, newest first
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	h.respondList(c)
}

// Create godoc
// @Summary Publish an announcement
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.AnnouncementForm true "Announcement payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var form dto.AnnouncementForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}

	if _, err := h.service.Create(c.Request.Context(), form); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Update godoc
// @Summary Edit an announcement
// @Tags Admin
// @Accept json
// @Produce json
// @Param announcementID path string true "Announcement ID"
// @Param payload body dto.AnnouncementForm true "Announcement payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/announcements/{announcementID} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var form dto.AnnouncementForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}

	if _, err := h.service.Update(c.Request.Context(), c.Param("announcementID"), form); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Delete godoc
// @Summary Delete an announcement
// @Tags Admin
// @Produce json
// @Param announcementID path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Router /admin/announcements/{announcementID} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("announcementID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

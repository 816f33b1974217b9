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

type meetingAdminService interface {
	List(ctx context.Context, tab string) ([]models.Meeting, error)
	Create(ctx context.Context, form dto.MeetingForm) (*models.Meeting, error)
	Update(ctx context.Context, meetingID string, form dto.MeetingForm) (*models.Meeting, error)
	Delete(ctx context.Context, meetingID string) error
	Approve(ctx context.Context, meetingID string) error
	Reject(ctx context.Context, meetingID string, req dto.RejectRequest) error
}

// MeetingAdminHandler serves admin meeting management.
type MeetingAdminHandler struct {
	service meetingAdminService
	co      *Coordinator
}

// NewMeetingAdminHandler constructs the handler.
func NewMeetingAdminHandler(service meetingAdminService, co *Coordinator) *MeetingAdminHandler {
	return &MeetingAdminHandler{service: service, co: co}
}

func (h *MeetingAdminHandler) tab(c *gin.Context) string {
	tab := c.Query("tab")
	if tab == "" {
		tab = "all"
	}
	return tab
}

func (h *MeetingAdminHandler) respondList(c *gin.Context) {
	meetings, err := h.service.List(c.Request.Context(), h.tab(c))
	if err != nil {
		h.co.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meetings)
}

// List godoc
// @Summary List meetings by tab
// @Tags Admin
// @Produce json
// @Param tab query string false "all|pending|approved|rejected" default(all)
// @Success 200 {object} response.Envelope
// @Router /admin/meetings [get]
func (h *MeetingAdminHandler) List(c *gin.Context) {
	h.respondList(c)
}

// Create godoc
// @Summary Schedule a meeting
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.MeetingForm true "Meeting payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/meetings [post]
func (h *MeetingAdminHandler) Create(c *gin.Context) {
	var form dto.MeetingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid meeting payload"))
		return
	}

	if _, err := h.service.Create(c.Request.Context(), form); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Update godoc
// @Summary Edit a meeting
// @Tags Admin
// @Accept json
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Param payload body dto.MeetingForm true "Meeting payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/meetings/{meetingID} [put]
func (h *MeetingAdminHandler) Update(c *gin.Context) {
	var form dto.MeetingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid meeting payload"))
		return
	}

	if _, err := h.service.Update(c.Request.Context(), c.Param("meetingID"), form); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Delete godoc
// @Summary Delete a meeting
// @Tags Admin
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Success 200 {object} response.Envelope
// @Router /admin/meetings/{meetingID} [delete]
func (h *MeetingAdminHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("meetingID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Approve godoc
// @Summary Approve a requested meeting
// @Tags Admin
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Success 200 {object} response.Envelope
// @Router /admin/meetings/{meetingID}/approve [put]
func (h *MeetingAdminHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Request.Context(), c.Param("meetingID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Reject godoc
// @Summary Reject a requested meeting
// @Tags Admin
// @Accept json
// @Produce json
// @Param meetingID path string true "Meeting ID"
// @Param payload body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/meetings/{meetingID}/reject [put]
func (h *MeetingAdminHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rejection payload"))
		return
	}

	if err := h.service.Reject(c.Request.Context(), c.Param("meetingID"), req); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

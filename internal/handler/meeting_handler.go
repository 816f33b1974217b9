package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type meetingService interface {
	Screen(ctx context.Context, parentID string) (*dto.MeetingsScreen, error)
	Request(ctx context.Context, parentID, parentName string, form dto.MeetingRequestForm) (*dto.MeetingRequestResult, error)
}

// MeetingHandler serves the parent meetings screen.
type MeetingHandler struct {
	service meetingService
	co      *Coordinator
}

// NewMeetingHandler constructs the handler.
func NewMeetingHandler(service meetingService, co *Coordinator) *MeetingHandler {
	return &MeetingHandler{service: service, co: co}
}

// Screen godoc
// @Summary Parent meetings
// @Description Meetings for the signed-in parent; blocked without an approved child
// @Tags Meetings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parent/meetings [get]
func (h *MeetingHandler) Screen(c *gin.Context) {
	sess := sessionFromContext(c)

	screen, err := h.service.Screen(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

// Request godoc
// @Summary Request a one-on-one meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body dto.MeetingRequestForm true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parent/meetings/request [post]
func (h *MeetingHandler) Request(c *gin.Context) {
	sess := sessionFromContext(c)

	var form dto.MeetingRequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid meeting request payload"))
		return
	}

	result, err := h.service.Request(c.Request.Context(), actorParentID(sess), sess.User.DisplayName(), form)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, result)
}

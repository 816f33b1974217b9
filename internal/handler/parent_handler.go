package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type parentDashboardService interface {
	Dashboard(ctx context.Context, parentID string) (*dto.ParentDashboard, error)
}

// ParentHandler serves the parent landing screen.
type ParentHandler struct {
	service parentDashboardService
	co      *Coordinator
}

// NewParentHandler constructs the handler.
func NewParentHandler(service parentDashboardService, co *Coordinator) *ParentHandler {
	return &ParentHandler{service: service, co: co}
}

// Dashboard godoc
// @Summary Parent dashboard
// @Description Profile, children, announcements and upcoming approved meetings
// @Tags Parent
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parent [get]
func (h *ParentHandler) Dashboard(c *gin.Context) {
	sess := sessionFromContext(c)

	screen, err := h.service.Dashboard(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type adminDashboardService interface {
	Dashboard(ctx context.Context) (*dto.AdminDashboard, error)
}

// AdminDashboardHandler serves the admin landing screen.
type AdminDashboardHandler struct {
	service adminDashboardService
	co      *Coordinator
}

// NewAdminDashboardHandler constructs the handler.
func NewAdminDashboardHandler(service adminDashboardService, co *Coordinator) *AdminDashboardHandler {
	return &AdminDashboardHandler{service: service, co: co}
}

// Dashboard godoc
// @Summary Admin dashboard counts
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin [get]
func (h *AdminDashboardHandler) Dashboard(c *gin.Context) {
	screen, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type tripService interface {
	Screen(ctx context.Context, parentID string) (*dto.TripsScreen, error)
	Pay(ctx context.Context, parentID, tripID string, req dto.PaymentRequest) (*dto.PaymentReceipt, error)
}

// TripHandler serves the parent trips screen and the mock payment flow.
type TripHandler struct {
	service tripService
	co      *Coordinator
}

// NewTripHandler constructs the handler.
func NewTripHandler(service tripService, co *Coordinator) *TripHandler {
	return &TripHandler{service: service, co: co}
}

// Screen godoc
// @Summary Parent trips
// @Description Trips with per-child eligibility, registration and payment standing; blocked without an approved child
// @Tags Trips
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parent/trips [get]
func (h *TripHandler) Screen(c *gin.Context) {
	sess := sessionFromContext(c)

	screen, err := h.service.Screen(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

// Register godoc
// @Summary Register a child for a trip with a mock payment
// @Tags Trips
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param payload body dto.PaymentRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parent/trips/{tripID}/register [post]
func (h *TripHandler) Register(c *gin.Context) {
	sess := sessionFromContext(c)

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}

	receipt, err := h.service.Pay(c.Request.Context(), actorParentID(sess), c.Param("tripID"), req)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, receipt)
}

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

type tripAdminService interface {
	List(ctx context.Context) ([]models.Trip, error)
	Create(ctx context.Context, form dto.TripForm) (*models.Trip, error)
	Update(ctx context.Context, tripID string, form dto.TripForm) (*models.Trip, error)
	Delete(ctx context.Context, tripID string) error
	Hold(ctx context.Context, tripID string) error
	Activate(ctx context.Context, tripID string) error
	UpdateImage(ctx context.Context, tripID string, req dto.TripImageRequest) error
	PaidStudentsReport(ctx context.Context, tripID string) (*dto.PaidStudentsReport, error)
	ExportPaidStudents(ctx context.Context, tripID, format string) ([]byte, string, string, error)
}

// TripAdminHandler serves admin trip management.
type TripAdminHandler struct {
	service tripAdminService
	co      *Coordinator
}

// NewTripAdminHandler constructs the handler.
func NewTripAdminHandler(service tripAdminService, co *Coordinator) *TripAdminHandler {
	return &TripAdminHandler{service: service, co: co}
}

func (h *TripAdminHandler) respondList(c *gin.Context) {
	trips, err := h.service.List(c.Request.Context())
	if err != nil {
		h.co.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trips)
}

// List godoc
// @Summary List trips, active first
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/trips [get]
func (h *TripAdminHandler) List(c *gin.Context) {
	h.respondList(c)
}

// Create godoc
// @Summary Create a trip
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.TripForm true "Trip payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/trips [post]
func (h *TripAdminHandler) Create(c *gin.Context) {
	var form dto.TripForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid trip payload"))
		return
	}

	if _, err := h.service.Create(c.Request.Context(), form); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Update godoc
// @Summary Edit a trip
// @Tags Admin
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param payload body dto.TripForm true "Trip payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/trips/{tripID} [put]
func (h *TripAdminHandler) Update(c *gin.Context) {
	var form dto.TripForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid trip payload"))
		return
	}

	if _, err := h.service.Update(c.Request.Context(), c.Param("tripID"), form); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Delete godoc
// @Summary Delete a trip
// @Tags Admin
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /admin/trips/{tripID} [delete]
func (h *TripAdminHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("tripID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Hold godoc
// @Summary Put a trip on hold
// @Tags Admin
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /admin/trips/{tripID}/hold [put]
func (h *TripAdminHandler) Hold(c *gin.Context) {
	if err := h.service.Hold(c.Request.Context(), c.Param("tripID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// Activate godoc
// @Summary Reactivate a held trip
// @Tags Admin
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /admin/trips/{tripID}/activate [put]
func (h *TripAdminHandler) Activate(c *gin.Context) {
	if err := h.service.Activate(c.Request.Context(), c.Param("tripID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// UpdateImage godoc
// @Summary Replace a trip's image
// @Tags Admin
// @Accept json
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param payload body dto.TripImageRequest true "Inline encoded image"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/trips/{tripID}/image [put]
func (h *TripAdminHandler) UpdateImage(c *gin.Context) {
	var req dto.TripImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid image payload"))
		return
	}

	if err := h.service.UpdateImage(c.Request.Context(), c.Param("tripID"), req); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondList(c)
}

// PaidStudents godoc
// @Summary Paid students report for a trip
// @Description Grouped by grade; format=csv|pdf downloads the export
// @Tags Admin
// @Produce json
// @Param tripID path string true "Trip ID"
// @Param format query string false "csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /admin/trips/{tripID}/paid-students [get]
func (h *TripAdminHandler) PaidStudents(c *gin.Context) {
	tripID := c.Param("tripID")

	if format := c.Query("format"); format != "" {
		data, contentType, fileName, err := h.service.ExportPaidStudents(c.Request.Context(), tripID, format)
		if err != nil {
			h.co.fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
		c.Data(http.StatusOK, contentType, data)
		return
	}

	report, err := h.service.PaidStudentsReport(c.Request.Context(), tripID)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report)
}

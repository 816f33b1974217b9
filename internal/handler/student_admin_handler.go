package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type studentAdminService interface {
	Screen(ctx context.Context, tab string) (*dto.StudentsScreen, error)
	Approve(ctx context.Context, studentID string) error
	ApproveWithClass(ctx context.Context, studentID string, req dto.ApproveWithClassRequest) error
	Reject(ctx context.Context, studentID string, req dto.RejectRequest) error
	Delete(ctx context.Context, studentID string) error
}

// StudentAdminHandler serves the admin student queue. Mutations answer with
// the refreshed tab so the browser never needs a second round trip.
type StudentAdminHandler struct {
	service   studentAdminService
	documents childDocumentLister
	co        *Coordinator
}

// NewStudentAdminHandler constructs the handler.
func NewStudentAdminHandler(service studentAdminService, documents childDocumentLister, co *Coordinator) *StudentAdminHandler {
	return &StudentAdminHandler{service: service, documents: documents, co: co}
}

func (h *StudentAdminHandler) tab(c *gin.Context) string {
	tab := c.Query("tab")
	if tab == "" {
		tab = "all"
	}
	return tab
}

func (h *StudentAdminHandler) respondScreen(c *gin.Context) {
	screen, err := h.service.Screen(c.Request.Context(), h.tab(c))
	if err != nil {
		h.co.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, screen)
}

// Screen godoc
// @Summary Admin student queue
// @Tags Admin
// @Produce json
// @Param tab query string false "all|pending|approved|rejected" default(all)
// @Success 200 {object} response.Envelope
// @Router /admin/students [get]
func (h *StudentAdminHandler) Screen(c *gin.Context) {
	h.respondScreen(c)
}

// Approve godoc
// @Summary Approve an application
// @Tags Admin
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/students/{studentID}/approve [put]
func (h *StudentAdminHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Request.Context(), c.Param("studentID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondScreen(c)
}

// ApproveWithClass godoc
// @Summary Approve an application and assign a class
// @Tags Admin
// @Accept json
// @Produce json
// @Param studentID path string true "Student ID"
// @Param payload body dto.ApproveWithClassRequest true "Class assignment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/students/{studentID}/approve-with-class [put]
func (h *StudentAdminHandler) ApproveWithClass(c *gin.Context) {
	var req dto.ApproveWithClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class assignment payload"))
		return
	}

	if err := h.service.ApproveWithClass(c.Request.Context(), c.Param("studentID"), req); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondScreen(c)
}

// Reject godoc
// @Summary Reject an application
// @Tags Admin
// @Accept json
// @Produce json
// @Param studentID path string true "Student ID"
// @Param payload body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/students/{studentID}/reject [put]
func (h *StudentAdminHandler) Reject(c *gin.Context) {
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rejection payload"))
		return
	}

	if err := h.service.Reject(c.Request.Context(), c.Param("studentID"), req); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondScreen(c)
}

// Delete godoc
// @Summary Delete a student record
// @Tags Admin
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/students/{studentID} [delete]
func (h *StudentAdminHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("studentID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondScreen(c)
}

// Documents godoc
// @Summary Documents for one student
// @Description Backs the admin review modal
// @Tags Admin
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/students/{studentID}/documents [get]
func (h *StudentAdminHandler) Documents(c *gin.Context) {
	documents, err := h.documents.StudentDocuments(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, documents)
}

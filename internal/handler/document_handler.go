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

type documentService interface {
	ParentDocuments(ctx context.Context, parentID string) (*dto.DocumentsScreen, error)
	Upload(ctx context.Context, parentID, uploadedBy string, req dto.UploadDocumentRequest) (*models.Document, error)
	Delete(ctx context.Context, documentID string) error
	Replace(ctx context.Context, parentID, uploadedBy string, req dto.ReplaceDocumentRequest) (*dto.ReplaceDocumentResult, error)
	RequestDocument(ctx context.Context, parentID string, form dto.DocumentRequestForm) (*models.DocumentRequest, error)
}

// DocumentHandler serves the parent documents screen.
type DocumentHandler struct {
	service documentService
	co      *Coordinator
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService, co *Coordinator) *DocumentHandler {
	return &DocumentHandler{service: service, co: co}
}

// Screen godoc
// @Summary Parent documents
// @Description Documents across the parent's children with viewer strategy per file
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parent/documents [get]
func (h *DocumentHandler) Screen(c *gin.Context) {
	sess := sessionFromContext(c)

	screen, err := h.service.ParentDocuments(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

// Upload godoc
// @Summary Upload a document
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body dto.UploadDocumentRequest true "Inline encoded file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parent/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	sess := sessionFromContext(c)

	var req dto.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid upload payload"))
		return
	}

	if _, err := h.service.Upload(c.Request.Context(), actorParentID(sess), sess.User.DisplayName(), req); err != nil {
		h.co.fail(c, err)
		return
	}

	screen, err := h.service.ParentDocuments(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

// Delete godoc
// @Summary Delete a document
// @Tags Documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /parent/documents/{documentID} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	sess := sessionFromContext(c)

	if err := h.service.Delete(c.Request.Context(), c.Param("documentID")); err != nil {
		h.co.fail(c, err)
		return
	}

	screen, err := h.service.ParentDocuments(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

// Replace godoc
// @Summary Replace a document
// @Description Uploads the new file first, then deletes the old one; a failed delete is reported as a warning
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceDocumentRequest true "Replacement payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parent/documents/replace [post]
func (h *DocumentHandler) Replace(c *gin.Context) {
	sess := sessionFromContext(c)

	var req dto.ReplaceDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid replacement payload"))
		return
	}

	result, err := h.service.Replace(c.Request.Context(), actorParentID(sess), sess.User.DisplayName(), req)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Request godoc
// @Summary Ask the school for a document
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body dto.DocumentRequestForm true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parent/documents/request [post]
func (h *DocumentHandler) Request(c *gin.Context) {
	sess := sessionFromContext(c)

	var form dto.DocumentRequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document request payload"))
		return
	}

	request, err := h.service.RequestDocument(c.Request.Context(), actorParentID(sess), form)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, request)
}

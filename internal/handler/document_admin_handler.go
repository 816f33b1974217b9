package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type documentAdminService interface {
	ReviewQueue(ctx context.Context, allRequests bool) (*dto.DocumentReviewScreen, error)
	Verify(ctx context.Context, documentID, verifiedBy string) (*dto.VerifyDocumentResult, error)
	ApproveRequest(ctx context.Context, requestID string) error
}

// DocumentAdminHandler serves the admin document verification queue and the
// parent document-request queue.
type DocumentAdminHandler struct {
	service documentAdminService
	co      *Coordinator
}

// NewDocumentAdminHandler constructs the handler.
func NewDocumentAdminHandler(service documentAdminService, co *Coordinator) *DocumentAdminHandler {
	return &DocumentAdminHandler{service: service, co: co}
}

func (h *DocumentAdminHandler) allRequests(c *gin.Context) bool {
	return c.Query("requests") == "all"
}

func (h *DocumentAdminHandler) respondQueue(c *gin.Context) {
	screen, err := h.service.ReviewQueue(c.Request.Context(), h.allRequests(c))
	if err != nil {
		h.co.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, screen)
}

// Queue godoc
// @Summary Unverified documents and document requests
// @Tags Admin
// @Produce json
// @Param requests query string false "pending (default) or all"
// @Success 200 {object} response.Envelope
// @Router /admin/documents [get]
func (h *DocumentAdminHandler) Queue(c *gin.Context) {
	h.respondQueue(c)
}

// Verify godoc
// @Summary Mark a document verified
// @Tags Admin
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /admin/documents/{documentID}/verify [put]
func (h *DocumentAdminHandler) Verify(c *gin.Context) {
	sess := sessionFromContext(c)

	if _, err := h.service.Verify(c.Request.Context(), c.Param("documentID"), sess.User.DisplayName()); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondQueue(c)
}

// ApproveRequest godoc
// @Summary Approve a parent's document request
// @Tags Admin
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /admin/document-requests/{requestID}/approve [put]
func (h *DocumentAdminHandler) ApproveRequest(c *gin.Context) {
	if err := h.service.ApproveRequest(c.Request.Context(), c.Param("requestID")); err != nil {
		h.co.fail(c, err)
		return
	}
	h.respondQueue(c)
}

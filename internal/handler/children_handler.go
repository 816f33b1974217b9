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

type childrenService interface {
	List(ctx context.Context, parentID string) (*dto.ChildrenScreen, error)
	AddChild(ctx context.Context, parentID, uploadedBy string, req dto.AddChildRequest) (*dto.AddChildResult, error)
	UpdateChild(ctx context.Context, parentID, studentID string, req dto.UpdateChildRequest) (*models.Student, error)
}

type childDocumentLister interface {
	StudentDocuments(ctx context.Context, studentID string) ([]dto.DocumentView, error)
}

// ChildrenHandler serves the parent children screen: the enrollment
// application form, edits to pending applications, and the per-child
// document modal.
type ChildrenHandler struct {
	service   childrenService
	documents childDocumentLister
	co        *Coordinator
}

// NewChildrenHandler constructs the handler.
func NewChildrenHandler(service childrenService, documents childDocumentLister, co *Coordinator) *ChildrenHandler {
	return &ChildrenHandler{service: service, documents: documents, co: co}
}

// List godoc
// @Summary List the parent's children
// @Tags Parent
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parent/children [get]
func (h *ChildrenHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)

	screen, err := h.service.List(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, screen)
}

// AddChild godoc
// @Summary Submit an enrollment application
// @Description Creates the student, then uploads the inline supporting files best-effort
// @Tags Parent
// @Accept json
// @Produce json
// @Param payload body dto.AddChildRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parent/children [post]
func (h *ChildrenHandler) AddChild(c *gin.Context) {
	sess := sessionFromContext(c)

	var req dto.AddChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}

	result, err := h.service.AddChild(c.Request.Context(), actorParentID(sess), sess.User.DisplayName(), req)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, result)
}

// UpdateChild godoc
// @Summary Edit a pending application
// @Tags Parent
// @Accept json
// @Produce json
// @Param studentID path string true "Student ID"
// @Param payload body dto.UpdateChildRequest true "Updated application"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /parent/children/{studentID} [put]
func (h *ChildrenHandler) UpdateChild(c *gin.Context) {
	sess := sessionFromContext(c)

	var req dto.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}

	student, err := h.service.UpdateChild(c.Request.Context(), actorParentID(sess), c.Param("studentID"), req)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student)
}

// Documents godoc
// @Summary Documents for one of the parent's children
// @Tags Parent
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /parent/children/{studentID}/documents [get]
func (h *ChildrenHandler) Documents(c *gin.Context) {
	sess := sessionFromContext(c)
	studentID := c.Param("studentID")

	screen, err := h.service.List(c.Request.Context(), actorParentID(sess))
	if err != nil {
		h.co.fail(c, err)
		return
	}

	var student *models.Student
	for i := range screen.Children {
		if screen.Children[i].StudentID == studentID {
			student = &screen.Children[i]
			break
		}
	}
	if student == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "not one of your children"))
		return
	}

	documents, err := h.documents.StudentDocuments(c.Request.Context(), studentID)
	if err != nil {
		h.co.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.ChildDocuments{Student: *student, Documents: documents})
}

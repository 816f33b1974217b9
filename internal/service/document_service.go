package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	"github.com/oakfield-primary/portal-api/internal/viewer"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type documentGateway interface {
	UploadDocument(ctx context.Context, upload gateway.DocumentUpload) (*models.Document, error)
	ListDocumentsByStudent(ctx context.Context, studentID string) ([]models.Document, error)
	ListDocumentsByParent(ctx context.Context, parentID string) ([]models.Document, error)
	ListUnverifiedDocuments(ctx context.Context) ([]models.Document, error)
	VerifyDocument(ctx context.Context, documentID, verifiedBy string) error
	DeleteDocument(ctx context.Context, documentID string) error
}

type documentRequestGateway interface {
	CreateDocumentRequest(ctx context.Context, parentID string, payload gateway.DocumentRequestPayload) (*models.DocumentRequest, error)
	ListDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error)
	ListPendingDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error)
	ApproveDocumentRequest(ctx context.Context, requestID string) error
}

// DocumentService covers the parent document screens and the admin
// verification queue.
type DocumentService struct {
	gateway   documentGateway
	requests  documentRequestGateway
	notices   NoticeFactory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocumentService constructs the service.
func NewDocumentService(gw documentGateway, requests documentRequestGateway, notices NoticeFactory, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		gateway:   gw,
		requests:  requests,
		notices:   notices,
		validator: validate,
		logger:    logger,
	}
}

// ParentDocuments builds the parent documents screen.
func (s *DocumentService) ParentDocuments(ctx context.Context, parentID string) (*dto.DocumentsScreen, error) {
	documents, err := s.gateway.ListDocumentsByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentsScreen{Documents: presentDocuments(documents)}, nil
}

// StudentDocuments lists one student's documents for the review modal.
func (s *DocumentService) StudentDocuments(ctx context.Context, studentID string) ([]dto.DocumentView, error) {
	documents, err := s.gateway.ListDocumentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return presentDocuments(documents), nil
}

// Upload stores a new document.
func (s *DocumentService) Upload(ctx context.Context, parentID, uploadedBy string, req dto.UploadDocumentRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file and document type are required")
	}
	if req.FileSize > maxUploadBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, "the file exceeds the 5 MB limit")
	}
	return s.gateway.UploadDocument(ctx, gateway.DocumentUpload{
		FileName:     req.FileName,
		FileData:     req.FileData,
		MimeType:     req.MimeType,
		FileSize:     req.FileSize,
		DocumentType: req.DocumentType,
		Description:  req.Description,
		StudentID:    req.StudentID,
		ParentID:     parentID,
		UploadedBy:   uploadedBy,
	})
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	return s.gateway.DeleteDocument(ctx, documentID)
}

// Replace uploads the new file first and only then deletes the old one.
// When the delete fails the upload stands and the old document is
// reported as orphaned; there is no compensation step.
func (s *DocumentService) Replace(ctx context.Context, parentID, uploadedBy string, req dto.ReplaceDocumentRequest) (*dto.ReplaceDocumentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file, document type and the document to replace are required")
	}

	uploaded, err := s.Upload(ctx, parentID, uploadedBy, req.UploadDocumentRequest)
	if err != nil {
		return nil, err
	}

	result := &dto.ReplaceDocumentResult{
		Document: *uploaded,
		Notice:   s.notices.New("Document replaced"),
	}
	if err := s.gateway.DeleteDocument(ctx, req.OldDocumentID); err != nil {
		s.logger.Warn("old document survived a replace",
			zap.String("orphaned_document_id", req.OldDocumentID),
			zap.Error(err))
		result.Warnings = append(result.Warnings, dto.Warning{
			Code:    "orphaned_document_id",
			Message: "The new file was saved but the old document (" + req.OldDocumentID + ") could not be removed.",
		})
	}
	return result, nil
}

// RequestDocument files a parent's request for the school to act on.
func (s *DocumentService) RequestDocument(ctx context.Context, parentID string, form dto.DocumentRequestForm) (*models.DocumentRequest, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "document type is required")
	}
	return s.requests.CreateDocumentRequest(ctx, parentID, gateway.DocumentRequestPayload{
		StudentID:    form.StudentID,
		DocumentType: form.DocumentType,
		Message:      form.Notes,
	})
}

// ReviewQueue builds the admin verification screen: the unverified
// document queue plus document requests, fetched in parallel. By default
// only open requests are shown; allRequests widens the queue to every
// request including handled ones.
func (s *DocumentService) ReviewQueue(ctx context.Context, allRequests bool) (*dto.DocumentReviewScreen, error) {
	var (
		wg         sync.WaitGroup
		unverified []models.Document
		requests   []models.DocumentRequest

		unverifiedErr, requestsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		unverified, unverifiedErr = s.gateway.ListUnverifiedDocuments(ctx)
	}()
	go func() {
		defer wg.Done()
		if allRequests {
			requests, requestsErr = s.requests.ListDocumentRequests(ctx)
		} else {
			requests, requestsErr = s.requests.ListPendingDocumentRequests(ctx)
		}
	}()
	wg.Wait()

	if unverifiedErr != nil {
		return nil, unverifiedErr
	}
	if requestsErr != nil {
		return nil, requestsErr
	}
	return &dto.DocumentReviewScreen{
		Unverified: presentDocuments(unverified),
		Requests:   requests,
	}, nil
}

// Verify marks a document as reviewed, stamping the reviewing admin.
func (s *DocumentService) Verify(ctx context.Context, documentID, verifiedBy string) (*dto.VerifyDocumentResult, error) {
	if err := s.gateway.VerifyDocument(ctx, documentID, verifiedBy); err != nil {
		return nil, err
	}
	return &dto.VerifyDocumentResult{Notice: s.notices.New("Document verified")}, nil
}

// ApproveRequest marks a document request as handled.
func (s *DocumentService) ApproveRequest(ctx context.Context, requestID string) error {
	return s.requests.ApproveDocumentRequest(ctx, requestID)
}

func presentDocuments(documents []models.Document) []dto.DocumentView {
	views := make([]dto.DocumentView, len(documents))
	for i, doc := range documents {
		views[i] = dto.DocumentView{
			Document:   doc,
			TypeLabel:  doc.DocumentType.Label(),
			ViewerMode: string(viewer.Detect(doc.MimeType, doc.FileName)),
			Inline:     viewer.IsInline(doc.FileURL),
		}
	}
	return views
}

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// DocumentUpload is the upload payload; FileData carries the encoded file body.
type DocumentUpload struct {
	FileName     string `json:"fileName"`
	FileData     string `json:"fileData"`
	MimeType     string `json:"mimeType"`
	FileSize     int64  `json:"fileSize"`
	DocumentType string `json:"documentType"`
	Description  string `json:"description,omitempty"`
	StudentID    string `json:"studentId,omitempty"`
	ParentID     string `json:"parentId"`
	UploadedBy   string `json:"uploadedBy"`
}

// UploadDocument stores a document upstream.
func (c *Client) UploadDocument(ctx context.Context, upload DocumentUpload) (*models.Document, error) {
	var doc models.Document
	if err := c.do(ctx, http.MethodPost, "/documents", "documents", upload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocumentsByStudent returns a student's documents.
func (c *Client) ListDocumentsByStudent(ctx context.Context, studentID string) ([]models.Document, error) {
	var docs []models.Document
	path := fmt.Sprintf("/documents/student/%s", studentID)
	if err := c.do(ctx, http.MethodGet, path, "documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListDocumentsByParent returns every document a parent has uploaded.
func (c *Client) ListDocumentsByParent(ctx context.Context, parentID string) ([]models.Document, error) {
	var docs []models.Document
	path := fmt.Sprintf("/documents/parent/%s", parentID)
	if err := c.do(ctx, http.MethodGet, path, "documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListDocumentsByType returns documents of one type.
func (c *Client) ListDocumentsByType(ctx context.Context, documentType string) ([]models.Document, error) {
	var docs []models.Document
	path := fmt.Sprintf("/documents/type/%s", documentType)
	if err := c.do(ctx, http.MethodGet, path, "documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListUnverifiedDocuments returns documents awaiting review.
func (c *Client) ListUnverifiedDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.do(ctx, http.MethodGet, "/documents/unverified", "documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// VerifyDocument marks a document as reviewed by an administrator.
func (c *Client) VerifyDocument(ctx context.Context, documentID, verifiedBy string) error {
	path := fmt.Sprintf("/documents/%s/verify", documentID)
	payload := map[string]string{"verifiedBy": verifiedBy}
	return c.do(ctx, http.MethodPut, path, "documents", payload, nil)
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	path := fmt.Sprintf("/documents/%s", documentID)
	return c.do(ctx, http.MethodDelete, path, "documents", nil, nil)
}

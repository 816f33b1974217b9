package dto

import "github.com/oakfield-primary/portal-api/internal/models"

// DocumentView wraps a document with its presentation strategy.
type DocumentView struct {
	models.Document
	TypeLabel  string `json:"typeLabel"`
	ViewerMode string `json:"viewerMode"`
	Inline     bool   `json:"inline"`
}

// DocumentsScreen is the parent documents screen.
type DocumentsScreen struct {
	Documents []DocumentView `json:"documents"`
}

// UploadDocumentRequest adds a document to a student record.
type UploadDocumentRequest struct {
	StudentID    string `json:"studentId"`
	DocumentType string `json:"documentType" validate:"required"`
	Description  string `json:"description"`
	FileName     string `json:"fileName" validate:"required"`
	FileData     string `json:"fileData" validate:"required"`
	MimeType     string `json:"mimeType"`
	FileSize     int64  `json:"fileSize"`
}

// ReplaceDocumentRequest swaps an existing document for a new upload.
type ReplaceDocumentRequest struct {
	UploadDocumentRequest
	OldDocumentID string `json:"oldDocumentId" validate:"required"`
}

// ReplaceDocumentResult reports the new document; when deleting the old
// one failed, the orphan is flagged and the upload stands.
type ReplaceDocumentResult struct {
	Document models.Document `json:"document"`
	Warnings []Warning       `json:"warnings,omitempty"`
	Notice   Notice          `json:"notice"`
}

// DocumentRequestForm lets a parent ask the school for a document.
type DocumentRequestForm struct {
	DocumentType string `json:"documentType" validate:"required"`
	StudentID    string `json:"studentId"`
	Notes        string `json:"notes"`
}

// DocumentReviewScreen is the admin verification queue.
type DocumentReviewScreen struct {
	Unverified []DocumentView           `json:"unverified"`
	Requests   []models.DocumentRequest `json:"requests"`
}

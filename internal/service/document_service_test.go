package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type fakeDocumentGateway struct {
	calls      []string
	byParent   []models.Document
	unverified []models.Document
	deleteErr  error
	verified   map[string]string
}

func (f *fakeDocumentGateway) UploadDocument(_ context.Context, upload gateway.DocumentUpload) (*models.Document, error) {
	f.calls = append(f.calls, "upload")
	return &models.Document{DocumentID: "new-doc", FileName: upload.FileName}, nil
}

func (f *fakeDocumentGateway) ListDocumentsByStudent(context.Context, string) ([]models.Document, error) {
	return nil, nil
}

func (f *fakeDocumentGateway) ListDocumentsByParent(context.Context, string) ([]models.Document, error) {
	return f.byParent, nil
}

func (f *fakeDocumentGateway) ListUnverifiedDocuments(context.Context) ([]models.Document, error) {
	return f.unverified, nil
}

func (f *fakeDocumentGateway) VerifyDocument(_ context.Context, documentID, verifiedBy string) error {
	if f.verified == nil {
		f.verified = map[string]string{}
	}
	f.verified[documentID] = verifiedBy
	return nil
}

func (f *fakeDocumentGateway) DeleteDocument(_ context.Context, documentID string) error {
	f.calls = append(f.calls, "delete:"+documentID)
	return f.deleteErr
}

type fakeRequestGateway struct {
	created *gateway.DocumentRequestPayload
	pending []models.DocumentRequest
	all     []models.DocumentRequest
	listed  []string
}

func (f *fakeRequestGateway) CreateDocumentRequest(_ context.Context, _ string, payload gateway.DocumentRequestPayload) (*models.DocumentRequest, error) {
	f.created = &payload
	return &models.DocumentRequest{RequestID: "req-1", DocumentType: models.DocumentType(payload.DocumentType)}, nil
}

func (f *fakeRequestGateway) ListDocumentRequests(context.Context) ([]models.DocumentRequest, error) {
	f.listed = append(f.listed, "all")
	return f.all, nil
}

func (f *fakeRequestGateway) ListPendingDocumentRequests(context.Context) ([]models.DocumentRequest, error) {
	f.listed = append(f.listed, "pending")
	return f.pending, nil
}

func (f *fakeRequestGateway) ApproveDocumentRequest(context.Context, string) error {
	return nil
}

func newDocumentService(gw *fakeDocumentGateway, requests *fakeRequestGateway) *DocumentService {
	return NewDocumentService(gw, requests, NewNoticeFactory(0), nil, nil)
}

func replaceRequest() dto.ReplaceDocumentRequest {
	return dto.ReplaceDocumentRequest{
		UploadDocumentRequest: dto.UploadDocumentRequest{
			StudentID:    "st-1",
			DocumentType: "BIRTH_CERTIFICATE",
			FileName:     "cert-v2.pdf",
			FileData:     "data:application/pdf;base64,AA==",
			FileSize:     100,
		},
		OldDocumentID: "old-doc",
	}
}

func TestReplaceUploadsThenDeletes(t *testing.T) {
	gw := &fakeDocumentGateway{}
	svc := newDocumentService(gw, &fakeRequestGateway{})

	result, err := svc.Replace(context.Background(), "p1", "u1", replaceRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"upload", "delete:old-doc"}, gw.calls)
	assert.Equal(t, "new-doc", result.Document.DocumentID)
	assert.Empty(t, result.Warnings)
}

func TestReplaceDeleteFailureReportsOrphan(t *testing.T) {
	gw := &fakeDocumentGateway{deleteErr: appErrors.ErrUpstream}
	svc := newDocumentService(gw, &fakeRequestGateway{})

	result, err := svc.Replace(context.Background(), "p1", "u1", replaceRequest())
	require.NoError(t, err)

	assert.Equal(t, "new-doc", result.Document.DocumentID)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "orphaned_document_id", result.Warnings[0].Code)
	assert.Contains(t, result.Warnings[0].Message, "old-doc")
}

func TestReplaceUploadFailureSkipsDelete(t *testing.T) {
	gw := &fakeDocumentGateway{}
	svc := newDocumentService(gw, &fakeRequestGateway{})

	req := replaceRequest()
	req.FileSize = 6 << 20
	_, err := svc.Replace(context.Background(), "p1", "u1", req)

	assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
	assert.Empty(t, gw.calls)
}

func TestParentDocumentsCarryViewerModes(t *testing.T) {
	gw := &fakeDocumentGateway{byParent: []models.Document{
		{DocumentID: "d1", FileName: "photo.png", MimeType: "image/png", DocumentType: models.DocIDDocument},
		{DocumentID: "d2", FileName: "report.pdf", MimeType: "application/pdf", DocumentType: models.DocStudentReport},
		{DocumentID: "d3", FileName: "notes.docx", FileURL: "data:application/octet-stream;base64,AA=="},
	}}
	svc := newDocumentService(gw, &fakeRequestGateway{})

	screen, err := svc.ParentDocuments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, screen.Documents, 3)

	assert.Equal(t, "image", screen.Documents[0].ViewerMode)
	assert.Equal(t, "ID Document", screen.Documents[0].TypeLabel)
	assert.Equal(t, "pdf", screen.Documents[1].ViewerMode)
	assert.Equal(t, "download", screen.Documents[2].ViewerMode)
	assert.True(t, screen.Documents[2].Inline)
}

func TestVerifyStampsAdmin(t *testing.T) {
	gw := &fakeDocumentGateway{}
	svc := newDocumentService(gw, &fakeRequestGateway{})

	result, err := svc.Verify(context.Background(), "d1", "Admin Adams")
	require.NoError(t, err)
	assert.Equal(t, "Admin Adams", gw.verified["d1"])
	assert.NotEmpty(t, result.Notice.Message)
}

func TestRequestDocument(t *testing.T) {
	requests := &fakeRequestGateway{}
	svc := newDocumentService(&fakeDocumentGateway{}, requests)

	_, err := svc.RequestDocument(context.Background(), "p1", dto.DocumentRequestForm{
		DocumentType: "STUDENT_REPORT",
		StudentID:    "st-1",
		Notes:        "Term 2 report please",
	})
	require.NoError(t, err)
	require.NotNil(t, requests.created)
	assert.Equal(t, "STUDENT_REPORT", requests.created.DocumentType)
	assert.Equal(t, "Term 2 report please", requests.created.Message)
}

func TestReviewQueueScopesRequests(t *testing.T) {
	requests := &fakeRequestGateway{
		pending: []models.DocumentRequest{{RequestID: "req-1"}},
		all:     []models.DocumentRequest{{RequestID: "req-1"}, {RequestID: "req-2"}},
	}
	svc := newDocumentService(&fakeDocumentGateway{}, requests)

	screen, err := svc.ReviewQueue(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, screen.Requests, 1)
	assert.Equal(t, []string{"pending"}, requests.listed)

	screen, err = svc.ReviewQueue(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, screen.Requests, 2)
	assert.Equal(t, []string{"pending", "all"}, requests.listed)
}

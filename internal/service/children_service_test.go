package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type fakeChildrenGateway struct {
	children []models.Student
	added    *gateway.ChildPayload
	addErr   error
	updated  *gateway.ChildPayload
}

func (f *fakeChildrenGateway) ListChildren(context.Context, string) ([]models.Student, error) {
	return f.children, nil
}

func (f *fakeChildrenGateway) AddChild(_ context.Context, _ string, payload gateway.ChildPayload) (*models.Student, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.added = &payload
	return &models.Student{StudentID: "st-1", Name: payload.Name, Surname: payload.Surname, Status: models.StudentPending}, nil
}

func (f *fakeChildrenGateway) UpdateChild(_ context.Context, _, studentID string, payload gateway.ChildPayload) (*models.Student, error) {
	f.updated = &payload
	return &models.Student{StudentID: studentID, Name: payload.Name}, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads []gateway.DocumentUpload
	err     error
}

func (f *fakeUploader) UploadDocument(_ context.Context, upload gateway.DocumentUpload) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, upload)
	f.mu.Unlock()
	return &models.Document{DocumentID: "doc-" + upload.DocumentType}, nil
}

func validApplication() dto.AddChildRequest {
	return dto.AddChildRequest{
		Name:               "Thandi",
		Surname:            "Nkosi",
		Gender:             "F",
		DateOfBirth:        "2015-06-12",
		BirthCertificateID: "BC-991",
		Nationality:        "South African",
		Grade:              "3",
		YearOfAdmission:    "2026",
	}
}

func newChildrenService(gw *fakeChildrenGateway, uploader *fakeUploader) *ChildrenService {
	return NewChildrenService(gw, uploader, NewNoticeFactory(0), nil, nil)
}

func TestAddChildCreatesStudent(t *testing.T) {
	gw := &fakeChildrenGateway{}
	svc := newChildrenService(gw, &fakeUploader{})

	result, err := svc.AddChild(context.Background(), "p1", "u1", validApplication())
	require.NoError(t, err)

	require.NotNil(t, gw.added)
	assert.Equal(t, 2026, gw.added.YearOfAdmission)
	assert.Equal(t, "st-1", result.Student.StudentID)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, int64(2000), result.Notice.DismissAfterMS)
}

func TestAddChildRejectsBirthYearOutOfRange(t *testing.T) {
	svc := newChildrenService(&fakeChildrenGateway{}, &fakeUploader{})

	for _, dob := range []string{"2010-12-31", "2020-01-01"} {
		req := validApplication()
		req.DateOfBirth = dob
		_, err := svc.AddChild(context.Background(), "p1", "u1", req)
		assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"), dob)
	}
}

func TestAddChildAcceptsBoundaryBirthYears(t *testing.T) {
	for _, dob := range []string{"2011-01-01", "2019-12-31"} {
		gw := &fakeChildrenGateway{}
		svc := newChildrenService(gw, &fakeUploader{})

		req := validApplication()
		req.DateOfBirth = dob
		_, err := svc.AddChild(context.Background(), "p1", "u1", req)
		assert.NoError(t, err, dob)
	}
}

func TestAddChildUploadsSupportingFiles(t *testing.T) {
	gw := &fakeChildrenGateway{}
	uploader := &fakeUploader{}
	svc := newChildrenService(gw, uploader)

	req := validApplication()
	req.PreviousSchoolReport = &dto.InlineUpload{FileName: "report.pdf", FileData: "data:application/pdf;base64,AA==", FileSize: 100}
	req.IDDocument = &dto.InlineUpload{FileName: "id.png", FileData: "data:image/png;base64,AA==", FileSize: 100}

	result, err := svc.AddChild(context.Background(), "p1", "u1", req)
	require.NoError(t, err)

	assert.Empty(t, result.Warnings)
	require.Len(t, uploader.uploads, 2)
	types := []string{uploader.uploads[0].DocumentType, uploader.uploads[1].DocumentType}
	assert.Contains(t, types, "PREVIOUS_SCHOOL_REPORT")
	assert.Contains(t, types, "ID_DOCUMENT")
	for _, up := range uploader.uploads {
		assert.Equal(t, "st-1", up.StudentID)
		assert.Equal(t, "p1", up.ParentID)
	}
}

func TestAddChildUploadFailureIsNonFatal(t *testing.T) {
	gw := &fakeChildrenGateway{}
	uploader := &fakeUploader{err: appErrors.ErrUpstream}
	svc := newChildrenService(gw, uploader)

	req := validApplication()
	req.IDDocument = &dto.InlineUpload{FileName: "id.png", FileData: "data:image/png;base64,AA==", FileSize: 100}

	result, err := svc.AddChild(context.Background(), "p1", "u1", req)
	require.NoError(t, err)

	assert.Equal(t, "st-1", result.Student.StudentID)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "upload_failed", result.Warnings[0].Code)
}

func TestAddChildOversizedUploadSkipped(t *testing.T) {
	gw := &fakeChildrenGateway{}
	uploader := &fakeUploader{}
	svc := newChildrenService(gw, uploader)

	req := validApplication()
	req.ProfileImage = &dto.InlineUpload{FileName: "photo.png", FileData: "data:image/png;base64,AA==", FileSize: 6 << 20}

	result, err := svc.AddChild(context.Background(), "p1", "u1", req)
	require.NoError(t, err)

	assert.Empty(t, uploader.uploads)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "upload_too_large", result.Warnings[0].Code)
}

func TestAddChildUpstreamFailureSkipsUploads(t *testing.T) {
	gw := &fakeChildrenGateway{addErr: appErrors.ErrUpstream}
	uploader := &fakeUploader{}
	svc := newChildrenService(gw, uploader)

	req := validApplication()
	req.IDDocument = &dto.InlineUpload{FileName: "id.png", FileData: "data:image/png;base64,AA==", FileSize: 100}

	_, err := svc.AddChild(context.Background(), "p1", "u1", req)
	require.Error(t, err)
	assert.Empty(t, uploader.uploads)
}

func TestUpdateChildValidatesYear(t *testing.T) {
	svc := newChildrenService(&fakeChildrenGateway{}, &fakeUploader{})

	req := dto.UpdateChildRequest{
		Name: "Thandi", Surname: "Nkosi", Gender: "F",
		DateOfBirth: "2015-06-12", BirthCertificateID: "BC-991",
		Nationality: "South African", Grade: "3", YearOfAdmission: "soon",
	}
	_, err := svc.UpdateChild(context.Background(), "p1", "st-1", req)
	assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
}

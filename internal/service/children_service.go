package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

// Enrollment applications are open to children born in these years.
const (
	minBirthYear = 2011
	maxBirthYear = 2019
)

// maxUploadBytes caps each inline upload at 5 MB of decoded payload.
const maxUploadBytes = 5 << 20

type childrenGateway interface {
	ListChildren(ctx context.Context, parentID string) ([]models.Student, error)
	AddChild(ctx context.Context, parentID string, payload gateway.ChildPayload) (*models.Student, error)
	UpdateChild(ctx context.Context, parentID, studentID string, payload gateway.ChildPayload) (*models.Student, error)
}

type documentUploader interface {
	UploadDocument(ctx context.Context, upload gateway.DocumentUpload) (*models.Document, error)
}

// ChildrenService manages a parent's student applications.
type ChildrenService struct {
	gateway   childrenGateway
	uploader  documentUploader
	notices   NoticeFactory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChildrenService constructs the service.
func NewChildrenService(gw childrenGateway, uploader documentUploader, notices NoticeFactory, validate *validator.Validate, logger *zap.Logger) *ChildrenService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChildrenService{
		gateway:   gw,
		uploader:  uploader,
		notices:   notices,
		validator: validate,
		logger:    logger,
	}
}

// List returns the children screen.
func (s *ChildrenService) List(ctx context.Context, parentID string) (*dto.ChildrenScreen, error) {
	children, err := s.gateway.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return &dto.ChildrenScreen{Children: children}, nil
}

// AddChild submits an enrollment application, then uploads the optional
// supporting files best-effort. A failed upload never undoes the created
// student; it becomes a warning on the result.
func (s *ChildrenService) AddChild(ctx context.Context, parentID, uploadedBy string, req dto.AddChildRequest) (*dto.AddChildResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "all application fields are required")
	}
	payload, err := s.childPayload(req.Name, req.Surname, req.Gender, req.DateOfBirth, req.BirthCertificateID, req.Nationality, req.Grade, req.YearOfAdmission, req.PreviousSchool)
	if err != nil {
		return nil, err
	}

	student, err := s.gateway.AddChild(ctx, parentID, *payload)
	if err != nil {
		return nil, err
	}

	warnings := s.uploadSupportingFiles(ctx, parentID, uploadedBy, student.StudentID, req)
	return &dto.AddChildResult{
		Student:  *student,
		Warnings: warnings,
		Notice:   s.notices.New("Application submitted for " + student.DisplayName()),
	}, nil
}

// UpdateChild edits an application.
func (s *ChildrenService) UpdateChild(ctx context.Context, parentID, studentID string, req dto.UpdateChildRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "all application fields are required")
	}
	payload, err := s.childPayload(req.Name, req.Surname, req.Gender, req.DateOfBirth, req.BirthCertificateID, req.Nationality, req.Grade, req.YearOfAdmission, req.PreviousSchool)
	if err != nil {
		return nil, err
	}
	return s.gateway.UpdateChild(ctx, parentID, studentID, *payload)
}

func (s *ChildrenService) childPayload(name, surname, gender, dob, birthCertID, nationality, grade, yearOfAdmission, previousSchool string) (*gateway.ChildPayload, error) {
	birthDate, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date of birth must be YYYY-MM-DD")
	}
	if year := birthDate.Year(); year < minBirthYear || year > maxBirthYear {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("date of birth must fall between %d and %d", minBirthYear, maxBirthYear))
	}
	year, err := strconv.Atoi(yearOfAdmission)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year of admission must be a number")
	}
	return &gateway.ChildPayload{
		Name:               name,
		Surname:            surname,
		Gender:             gender,
		DateOfBirth:        dob,
		BirthCertificateID: birthCertID,
		Nationality:        nationality,
		Grade:              grade,
		YearOfAdmission:    year,
		PreviousSchool:     previousSchool,
	}, nil
}

type supportingFile struct {
	upload  *dto.InlineUpload
	docType models.DocumentType
	label   string
}

// uploadSupportingFiles pushes the optional application files in parallel
// and waits for every one before reporting. Each failure is a warning.
func (s *ChildrenService) uploadSupportingFiles(ctx context.Context, parentID, uploadedBy, studentID string, req dto.AddChildRequest) []dto.Warning {
	files := []supportingFile{
		{req.PreviousSchoolReport, models.DocPreviousSchoolReport, "previous school report"},
		{req.IDDocument, models.DocIDDocument, "ID document"},
		{req.ProfileImage, models.DocOther, "profile image"},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		warnings []dto.Warning
	)
	warn := func(w dto.Warning) {
		mu.Lock()
		warnings = append(warnings, w)
		mu.Unlock()
	}

	for _, file := range files {
		if file.upload == nil {
			continue
		}
		if file.upload.FileSize > maxUploadBytes {
			warn(dto.Warning{
				Code:    "upload_too_large",
				Message: fmt.Sprintf("The %s exceeds the 5 MB limit and was not uploaded.", file.label),
			})
			continue
		}
		wg.Add(1)
		go func(file supportingFile) {
			defer wg.Done()
			_, err := s.uploader.UploadDocument(ctx, gateway.DocumentUpload{
				FileName:     file.upload.FileName,
				FileData:     file.upload.FileData,
				MimeType:     file.upload.MimeType,
				FileSize:     file.upload.FileSize,
				DocumentType: string(file.docType),
				Description:  file.label,
				StudentID:    studentID,
				ParentID:     parentID,
				UploadedBy:   uploadedBy,
			})
			if err != nil {
				s.logger.Warn("application upload failed",
					zap.String("student_id", studentID),
					zap.String("document_type", string(file.docType)),
					zap.Error(err))
				warn(dto.Warning{
					Code:    "upload_failed",
					Message: fmt.Sprintf("The %s could not be uploaded. The application itself was submitted.", file.label),
				})
			}
		}(file)
	}
	wg.Wait()
	return warnings
}

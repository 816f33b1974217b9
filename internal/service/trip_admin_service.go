package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/export"
)

type tripAdminGateway interface {
	ListTrips(ctx context.Context) ([]models.Trip, error)
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	CreateTrip(ctx context.Context, payload gateway.TripPayload) (*models.Trip, error)
	UpdateTrip(ctx context.Context, tripID string, payload gateway.TripPayload) (*models.Trip, error)
	DeleteTrip(ctx context.Context, tripID string) error
	HoldTrip(ctx context.Context, tripID string) error
	ActivateTrip(ctx context.Context, tripID string) error
	UpdateTripImage(ctx context.Context, tripID, imageData string) error
	ListPaidStudents(ctx context.Context, tripID string) ([]gateway.PaidStudent, error)
}

// TripAdminService manages trips and the paid-students report.
type TripAdminService struct {
	gateway   tripAdminGateway
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTripAdminService constructs the service.
func NewTripAdminService(gw tripAdminGateway, validate *validator.Validate, logger *zap.Logger) *TripAdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TripAdminService{
		gateway:   gw,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// List returns all trips, active first.
func (s *TripAdminService) List(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.gateway.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].Active && !trips[j].Active
	})
	return trips, nil
}

// Create adds a trip.
func (s *TripAdminService) Create(ctx context.Context, form dto.TripForm) (*models.Trip, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title, description, destination, price, date and eligible grades are required")
	}
	return s.gateway.CreateTrip(ctx, tripPayload(form))
}

// Update edits a trip.
func (s *TripAdminService) Update(ctx context.Context, tripID string, form dto.TripForm) (*models.Trip, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title, description, destination, price, date and eligible grades are required")
	}
	return s.gateway.UpdateTrip(ctx, tripID, tripPayload(form))
}

// Delete removes a trip.
func (s *TripAdminService) Delete(ctx context.Context, tripID string) error {
	return s.gateway.DeleteTrip(ctx, tripID)
}

// Hold pauses registrations for a trip.
func (s *TripAdminService) Hold(ctx context.Context, tripID string) error {
	return s.gateway.HoldTrip(ctx, tripID)
}

// Activate reopens a held trip.
func (s *TripAdminService) Activate(ctx context.Context, tripID string) error {
	return s.gateway.ActivateTrip(ctx, tripID)
}

// UpdateImage replaces the trip image.
func (s *TripAdminService) UpdateImage(ctx context.Context, tripID string, req dto.TripImageRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "image data is required")
	}
	return s.gateway.UpdateTripImage(ctx, tripID, req.ImageData)
}

// PaidStudentsReport builds the paid-students report grouped by grade in
// the school's grade order.
func (s *TripAdminService) PaidStudentsReport(ctx context.Context, tripID string) (*dto.PaidStudentsReport, error) {
	trip, err := s.gateway.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	students, err := s.gateway.ListPaidStudents(ctx, tripID)
	if err != nil {
		return nil, err
	}

	byGrade := make(map[string][]dto.PaidStudentRow)
	for _, student := range students {
		grade := NormalizeGrade(student.Grade)
		byGrade[grade] = append(byGrade[grade], dto.PaidStudentRow{
			StudentID:     student.StudentID,
			FullName:      student.FullName,
			Grade:         student.Grade,
			PaymentMethod: student.PaymentMethod,
			PaidAt:        student.PaidAt,
		})
	}

	grades := make([]string, 0, len(byGrade))
	for grade := range byGrade {
		grades = append(grades, grade)
	}
	sort.SliceStable(grades, func(i, j int) bool { return gradeLess(grades[i], grades[j]) })

	groups := make([]dto.PaidStudentsGroup, len(grades))
	for i, grade := range grades {
		rows := byGrade[grade]
		sort.SliceStable(rows, func(a, b int) bool { return rows[a].FullName < rows[b].FullName })
		groups[i] = dto.PaidStudentsGroup{Grade: grade, Students: rows}
	}

	return &dto.PaidStudentsReport{Trip: *trip, Groups: groups, Total: len(students)}, nil
}

// ExportPaidStudents renders the report as CSV or PDF bytes. It returns
// the body, content type and a filename for the download.
func (s *TripAdminService) ExportPaidStudents(ctx context.Context, tripID, format string) ([]byte, string, string, error) {
	report, err := s.PaidStudentsReport(ctx, tripID)
	if err != nil {
		return nil, "", "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Grade", "Student", "Payment Method", "Paid At"},
	}
	for _, group := range report.Groups {
		for _, row := range group.Students {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Grade":          group.Grade,
				"Student":        row.FullName,
				"Payment Method": row.PaymentMethod,
				"Paid At":        row.PaidAt,
			})
		}
	}

	slug := tripSlug(report.Trip.Title)
	switch format {
	case "csv":
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render the CSV report")
		}
		return body, "text/csv", slug + "-paid-students.csv", nil
	case "pdf":
		body, err := s.pdf.Render(dataset, fmt.Sprintf("Paid Students: %s", report.Trip.Title))
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render the PDF report")
		}
		return body, "application/pdf", slug + "-paid-students.pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func tripPayload(form dto.TripForm) gateway.TripPayload {
	return gateway.TripPayload{
		Title:          form.Title,
		Description:    form.Description,
		Destination:    form.Destination,
		Price:          form.Price,
		TripDate:       form.TripDate,
		EligibleGrades: form.EligibleGrades,
	}
}

func tripSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "trip"
	}
	return slug
}

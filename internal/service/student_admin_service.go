package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

const unknownParentName = "Unknown"

type studentAdminGateway interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListStudentsByStatus(ctx context.Context, status string) ([]models.Student, error)
	ApproveStudent(ctx context.Context, studentID string) error
	ApproveStudentWithClass(ctx context.Context, studentID string, assignment gateway.ClassAssignment) error
	RejectStudent(ctx context.Context, studentID, reason string) error
	DeleteStudent(ctx context.Context, studentID string) error
}

type parentLookup interface {
	GetParent(ctx context.Context, parentID string) (*models.Parent, error)
}

// StudentAdminService drives the admin approval queue.
type StudentAdminService struct {
	gateway   studentAdminGateway
	parents   parentLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentAdminService constructs the service.
func NewStudentAdminService(gw studentAdminGateway, parents parentLookup, validate *validator.Validate, logger *zap.Logger) *StudentAdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentAdminService{gateway: gw, parents: parents, validator: validate, logger: logger}
}

// Screen builds one tab of the student queue: fetch by status, sort by
// grade order, then join parent display names with parallel lookups.
func (s *StudentAdminService) Screen(ctx context.Context, tab string) (*dto.StudentsScreen, error) {
	var (
		students []models.Student
		err      error
	)
	switch tab {
	case "", "all":
		tab = "all"
		students, err = s.gateway.ListStudents(ctx)
	case "pending", "approved", "rejected":
		students, err = s.gateway.ListStudentsByStatus(ctx, tab)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "tab must be all, pending, approved or rejected")
	}
	if err != nil {
		return nil, err
	}

	SortStudentsByGrade(students)
	names := s.parentNames(ctx, students)

	rows := make([]dto.StudentRow, len(students))
	for i, student := range students {
		rows[i] = dto.StudentRow{Student: student, ParentName: names[student.ParentID]}
	}
	return &dto.StudentsScreen{Tab: tab, Students: rows}, nil
}

// parentNames resolves each distinct parent id concurrently and waits for
// every lookup before returning. A failed lookup renders as "Unknown";
// the queue never fails because one profile is unreadable.
func (s *StudentAdminService) parentNames(ctx context.Context, students []models.Student) map[string]string {
	names := make(map[string]string)
	for _, student := range students {
		if student.ParentID != "" {
			names[student.ParentID] = unknownParentName
		}
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for parentID := range names {
		wg.Add(1)
		go func(parentID string) {
			defer wg.Done()
			parent, err := s.parents.GetParent(ctx, parentID)
			if err != nil {
				s.logger.Warn("parent lookup failed", zap.String("parent_id", parentID), zap.Error(err))
				return
			}
			mu.Lock()
			if parent.FullName != "" {
				names[parentID] = parent.FullName
			}
			mu.Unlock()
		}(parentID)
	}
	wg.Wait()
	return names
}

// Approve moves a PENDING or REJECTED application to APPROVED.
func (s *StudentAdminService) Approve(ctx context.Context, studentID string) error {
	return s.gateway.ApproveStudent(ctx, studentID)
}

// ApproveWithClass approves and assigns a class and teacher in one step.
func (s *StudentAdminService) ApproveWithClass(ctx context.Context, studentID string, req dto.ApproveWithClassRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "class name and teacher are required")
	}
	return s.gateway.ApproveStudentWithClass(ctx, studentID, gateway.ClassAssignment{
		ClassName: req.ClassName,
		Teacher:   req.Teacher,
	})
}

// Reject moves an application to REJECTED, including revoking an approval.
// The reason is mandatory.
func (s *StudentAdminService) Reject(ctx context.Context, studentID string, req dto.RejectRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "a rejection reason is required")
	}
	return s.gateway.RejectStudent(ctx, studentID, req.Reason)
}

// Delete removes an application entirely.
func (s *StudentAdminService) Delete(ctx context.Context, studentID string) error {
	return s.gateway.DeleteStudent(ctx, studentID)
}

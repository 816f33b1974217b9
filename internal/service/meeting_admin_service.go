package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type meetingAdminGateway interface {
	ListMeetings(ctx context.Context) ([]models.Meeting, error)
	ListMeetingsByStatus(ctx context.Context, status string) ([]models.Meeting, error)
	CreateMeeting(ctx context.Context, payload gateway.MeetingPayload) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, meetingID string, payload gateway.MeetingPayload) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
	ApproveMeeting(ctx context.Context, meetingID string) error
	RejectMeeting(ctx context.Context, meetingID, reason string) error
}

// MeetingAdminService drives the admin meeting queue.
type MeetingAdminService struct {
	gateway   meetingAdminGateway
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMeetingAdminService constructs the service.
func NewMeetingAdminService(gw meetingAdminGateway, validate *validator.Validate, logger *zap.Logger) *MeetingAdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingAdminService{gateway: gw, validator: validate, logger: logger}
}

// List returns one tab of the meeting queue.
func (s *MeetingAdminService) List(ctx context.Context, tab string) ([]models.Meeting, error) {
	switch tab {
	case "", "all":
		return s.gateway.ListMeetings(ctx)
	case "pending", "approved", "rejected":
		return s.gateway.ListMeetingsByStatus(ctx, tab)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "tab must be all, pending, approved or rejected")
	}
}

// Create schedules a meeting.
func (s *MeetingAdminService) Create(ctx context.Context, form dto.MeetingForm) (*models.Meeting, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title, description, teacher, time and type are required")
	}
	return s.gateway.CreateMeeting(ctx, meetingPayload(form))
}

// Update edits a meeting.
func (s *MeetingAdminService) Update(ctx context.Context, meetingID string, form dto.MeetingForm) (*models.Meeting, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title, description, teacher, time and type are required")
	}
	return s.gateway.UpdateMeeting(ctx, meetingID, meetingPayload(form))
}

// Delete removes a meeting.
func (s *MeetingAdminService) Delete(ctx context.Context, meetingID string) error {
	return s.gateway.DeleteMeeting(ctx, meetingID)
}

// Approve accepts a requested one-on-one slot.
func (s *MeetingAdminService) Approve(ctx context.Context, meetingID string) error {
	return s.gateway.ApproveMeeting(ctx, meetingID)
}

// Reject declines a requested slot; the reason is mandatory.
func (s *MeetingAdminService) Reject(ctx context.Context, meetingID string, req dto.RejectRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "a rejection reason is required")
	}
	return s.gateway.RejectMeeting(ctx, meetingID, req.Reason)
}

func meetingPayload(form dto.MeetingForm) gateway.MeetingPayload {
	return gateway.MeetingPayload{
		Title:         form.Title,
		Description:   form.Description,
		ScheduledTime: form.ScheduledTime,
		TeacherName:   form.TeacherName,
		Type:          form.Type,
		ParentID:      form.ParentID,
	}
}

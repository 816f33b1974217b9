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

const meetingsChildRequired = "Meetings become available once at least one of your children has an approved application."

type meetingGateway interface {
	ListParentMeetings(ctx context.Context, parentID string) ([]models.Meeting, error)
	RequestOneOnOne(ctx context.Context, request gateway.OneOnOneRequest) (*models.Meeting, error)
}

// MeetingService builds the parent meetings screen.
type MeetingService struct {
	gateway   meetingGateway
	children  childrenGateway
	notices   NoticeFactory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMeetingService constructs the service.
func NewMeetingService(gw meetingGateway, children childrenGateway, notices NoticeFactory, validate *validator.Validate, logger *zap.Logger) *MeetingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		gateway:   gw,
		children:  children,
		notices:   notices,
		validator: validate,
		logger:    logger,
	}
}

// Screen builds the meetings screen. The same approved-child gate as the
// trips screen applies: blocked parents trigger no meeting fetch at all.
func (s *MeetingService) Screen(ctx context.Context, parentID string) (*dto.MeetingsScreen, error) {
	children, err := s.children.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !models.HasApproved(children) {
		return &dto.MeetingsScreen{Blocked: true, BlockedReason: meetingsChildRequired}, nil
	}

	meetings, err := s.gateway.ListParentMeetings(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return &dto.MeetingsScreen{Meetings: meetings}, nil
}

// Request submits a one-on-one meeting request. The parent identity is
// stamped from the session, never from the form.
func (s *MeetingService) Request(ctx context.Context, parentID, parentName string, form dto.MeetingRequestForm) (*dto.MeetingRequestResult, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title, description, teacher and time are required")
	}

	children, err := s.children.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !models.HasApproved(children) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, meetingsChildRequired)
	}

	meeting, err := s.gateway.RequestOneOnOne(ctx, gateway.OneOnOneRequest{
		Title:         form.Title,
		Description:   form.Description,
		TeacherName:   form.TeacherName,
		ScheduledTime: form.ScheduledTime,
		ParentID:      parentID,
		ParentName:    parentName,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MeetingRequestResult{
		Meeting: *meeting,
		Notice:  s.notices.New("Meeting request submitted"),
	}, nil
}

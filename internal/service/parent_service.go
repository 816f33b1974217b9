package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type parentGateway interface {
	GetParent(ctx context.Context, parentID string) (*models.Parent, error)
	ListChildren(ctx context.Context, parentID string) ([]models.Student, error)
}

type dashboardExtras interface {
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	ListParentMeetings(ctx context.Context, parentID string) ([]models.Meeting, error)
}

// ParentService builds the parent landing screen.
type ParentService struct {
	gateway parentGateway
	extras  dashboardExtras
	logger  *zap.Logger
}

// NewParentService constructs the service.
func NewParentService(gw parentGateway, extras dashboardExtras, logger *zap.Logger) *ParentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentService{gateway: gw, extras: extras, logger: logger}
}

// Dashboard assembles the parent home screen. Profile and children are
// required; announcements and meetings degrade to warnings. All four
// fetches run in parallel and the screen is only built once every one
// has completed.
func (s *ParentService) Dashboard(ctx context.Context, parentID string) (*dto.ParentDashboard, error) {
	var (
		wg            sync.WaitGroup
		parent        *models.Parent
		children      []models.Student
		announcements []models.Announcement
		meetings      []models.Meeting

		parentErr, childrenErr, announcementsErr, meetingsErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		parent, parentErr = s.gateway.GetParent(ctx, parentID)
	}()
	go func() {
		defer wg.Done()
		children, childrenErr = s.gateway.ListChildren(ctx, parentID)
	}()
	go func() {
		defer wg.Done()
		announcements, announcementsErr = s.extras.ListAnnouncements(ctx)
	}()
	go func() {
		defer wg.Done()
		meetings, meetingsErr = s.extras.ListParentMeetings(ctx, parentID)
	}()
	wg.Wait()

	for _, err := range []error{parentErr, childrenErr, announcementsErr, meetingsErr} {
		if appErrors.IsCode(err, appErrors.ErrUpstreamAuth.Code) {
			return nil, err
		}
	}
	if parentErr != nil {
		return nil, parentErr
	}
	if childrenErr != nil {
		return nil, childrenErr
	}

	dashboard := &dto.ParentDashboard{
		Parent:   *parent,
		Children: children,
	}
	if announcementsErr != nil {
		s.logger.Warn("dashboard announcements unavailable", zap.Error(announcementsErr))
		dashboard.Warnings = append(dashboard.Warnings, dto.Warning{
			Code:    "announcements_unavailable",
			Message: "Announcements could not be loaded.",
		})
	} else {
		dashboard.Announcements = announcements
	}
	if meetingsErr != nil {
		s.logger.Warn("dashboard meetings unavailable", zap.Error(meetingsErr))
		dashboard.Warnings = append(dashboard.Warnings, dto.Warning{
			Code:    "meetings_unavailable",
			Message: "Upcoming meetings could not be loaded.",
		})
	} else {
		dashboard.UpcomingMeetings = approvedMeetings(meetings)
	}
	return dashboard, nil
}

func approvedMeetings(meetings []models.Meeting) []models.Meeting {
	upcoming := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m.Status == models.MeetingApproved {
			upcoming = append(upcoming, m)
		}
	}
	return upcoming
}

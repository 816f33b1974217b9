package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type adminDashboardGateway interface {
	ListStudentsByStatus(ctx context.Context, status string) ([]models.Student, error)
	ListTrips(ctx context.Context) ([]models.Trip, error)
	ListMeetingsByStatus(ctx context.Context, status string) ([]models.Meeting, error)
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
}

// AdminDashboardService summarizes the queues on the admin landing screen.
type AdminDashboardService struct {
	gateway adminDashboardGateway
	logger  *zap.Logger
}

// NewAdminDashboardService constructs the service.
func NewAdminDashboardService(gw adminDashboardGateway, logger *zap.Logger) *AdminDashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminDashboardService{gateway: gw, logger: logger}
}

// Dashboard fetches all four panels in parallel. Any one panel failing
// degrades to a warning and a zero count rather than an empty screen,
// except an expired upstream session which always propagates.
func (s *AdminDashboardService) Dashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	var (
		wg            sync.WaitGroup
		pending       []models.Student
		trips         []models.Trip
		meetings      []models.Meeting
		announcements []models.Announcement

		pendingErr, tripsErr, meetingsErr, announcementsErr error
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		pending, pendingErr = s.gateway.ListStudentsByStatus(ctx, "pending")
	}()
	go func() {
		defer wg.Done()
		trips, tripsErr = s.gateway.ListTrips(ctx)
	}()
	go func() {
		defer wg.Done()
		meetings, meetingsErr = s.gateway.ListMeetingsByStatus(ctx, "pending")
	}()
	go func() {
		defer wg.Done()
		announcements, announcementsErr = s.gateway.ListAnnouncements(ctx)
	}()
	wg.Wait()

	for _, err := range []error{pendingErr, tripsErr, meetingsErr, announcementsErr} {
		if appErrors.IsCode(err, appErrors.ErrUpstreamAuth.Code) {
			return nil, err
		}
	}

	dashboard := &dto.AdminDashboard{}
	warn := func(code, message string, err error) {
		s.logger.Warn("admin dashboard panel unavailable", zap.String("panel", code), zap.Error(err))
		dashboard.Warnings = append(dashboard.Warnings, dto.Warning{Code: code, Message: message})
	}

	if pendingErr != nil {
		warn("students_unavailable", "The pending student count could not be loaded.", pendingErr)
	} else {
		dashboard.PendingStudents = len(pending)
	}
	if tripsErr != nil {
		warn("trips_unavailable", "Trip counts could not be loaded.", tripsErr)
	} else {
		dashboard.TotalTrips = len(trips)
		for _, trip := range trips {
			if trip.Active {
				dashboard.ActiveTrips++
			}
		}
	}
	if meetingsErr != nil {
		warn("meetings_unavailable", "The pending meeting count could not be loaded.", meetingsErr)
	} else {
		dashboard.PendingMeetings = len(meetings)
	}
	if announcementsErr != nil {
		warn("announcements_unavailable", "The announcement count could not be loaded.", announcementsErr)
	} else {
		dashboard.Announcements = len(announcements)
	}
	return dashboard, nil
}

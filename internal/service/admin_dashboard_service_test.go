package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type fakeAdminDashboardGateway struct {
	pending       []models.Student
	trips         []models.Trip
	meetings      []models.Meeting
	announcements []models.Announcement
	tripsErr      error
	studentsErr   error
}

func (f *fakeAdminDashboardGateway) ListStudentsByStatus(context.Context, string) ([]models.Student, error) {
	if f.studentsErr != nil {
		return nil, f.studentsErr
	}
	return f.pending, nil
}

func (f *fakeAdminDashboardGateway) ListTrips(context.Context) ([]models.Trip, error) {
	if f.tripsErr != nil {
		return nil, f.tripsErr
	}
	return f.trips, nil
}

func (f *fakeAdminDashboardGateway) ListMeetingsByStatus(context.Context, string) ([]models.Meeting, error) {
	return f.meetings, nil
}

func (f *fakeAdminDashboardGateway) ListAnnouncements(context.Context) ([]models.Announcement, error) {
	return f.announcements, nil
}

func TestAdminDashboardCounts(t *testing.T) {
	gw := &fakeAdminDashboardGateway{
		pending: []models.Student{{StudentID: "s1"}, {StudentID: "s2"}},
		trips: []models.Trip{
			{TripID: "t1", Active: true},
			{TripID: "t2", Active: false},
			{TripID: "t3", Active: true},
		},
		meetings:      []models.Meeting{{MeetingID: "m1"}},
		announcements: []models.Announcement{{AnnouncementID: "a1"}},
	}
	svc := NewAdminDashboardService(gw, nil)

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.PendingStudents)
	assert.Equal(t, 3, dashboard.TotalTrips)
	assert.Equal(t, 2, dashboard.ActiveTrips)
	assert.Equal(t, 1, dashboard.PendingMeetings)
	assert.Equal(t, 1, dashboard.Announcements)
	assert.Empty(t, dashboard.Warnings)
}

func TestAdminDashboardPanelFailureIsWarning(t *testing.T) {
	gw := &fakeAdminDashboardGateway{
		pending:  []models.Student{{StudentID: "s1"}},
		tripsErr: appErrors.ErrUpstream,
	}
	svc := NewAdminDashboardService(gw, nil)

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.PendingStudents)
	assert.Zero(t, dashboard.TotalTrips)
	require.Len(t, dashboard.Warnings, 1)
	assert.Equal(t, "trips_unavailable", dashboard.Warnings[0].Code)
}

func TestAdminDashboardExpiredSessionPropagates(t *testing.T) {
	gw := &fakeAdminDashboardGateway{studentsErr: appErrors.ErrUpstreamAuth}
	svc := NewAdminDashboardService(gw, nil)

	_, err := svc.Dashboard(context.Background())
	assert.True(t, appErrors.IsCode(err, "UPSTREAM_UNAUTHORIZED"))
}

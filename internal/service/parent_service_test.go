package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type fakeParentGateway struct {
	parent    *models.Parent
	parentErr error
	children  []models.Student
}

func (f *fakeParentGateway) GetParent(context.Context, string) (*models.Parent, error) {
	if f.parentErr != nil {
		return nil, f.parentErr
	}
	return f.parent, nil
}

func (f *fakeParentGateway) ListChildren(context.Context, string) ([]models.Student, error) {
	return f.children, nil
}

type fakeDashboardExtras struct {
	announcements    []models.Announcement
	announcementsErr error
	meetings         []models.Meeting
}

func (f *fakeDashboardExtras) ListAnnouncements(context.Context) ([]models.Announcement, error) {
	if f.announcementsErr != nil {
		return nil, f.announcementsErr
	}
	return f.announcements, nil
}

func (f *fakeDashboardExtras) ListParentMeetings(context.Context, string) ([]models.Meeting, error) {
	return f.meetings, nil
}

func TestParentDashboardAssemblesScreen(t *testing.T) {
	gw := &fakeParentGateway{
		parent:   &models.Parent{ParentID: "p1", FullName: "Pat Example"},
		children: []models.Student{{StudentID: "s1", Status: models.StudentApproved}},
	}
	extras := &fakeDashboardExtras{
		announcements: []models.Announcement{{AnnouncementID: "a1"}},
		meetings: []models.Meeting{
			{MeetingID: "m1", Status: models.MeetingApproved},
			{MeetingID: "m2", Status: models.MeetingPending},
		},
	}
	svc := NewParentService(gw, extras, nil)

	dashboard, err := svc.Dashboard(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Pat Example", dashboard.Parent.FullName)
	assert.Len(t, dashboard.Children, 1)
	assert.Len(t, dashboard.Announcements, 1)
	// Only approved meetings count as upcoming.
	require.Len(t, dashboard.UpcomingMeetings, 1)
	assert.Equal(t, "m1", dashboard.UpcomingMeetings[0].MeetingID)
	assert.Empty(t, dashboard.Warnings)
}

func TestParentDashboardAnnouncementsDegrade(t *testing.T) {
	gw := &fakeParentGateway{parent: &models.Parent{ParentID: "p1"}}
	extras := &fakeDashboardExtras{announcementsErr: appErrors.ErrUpstream}
	svc := NewParentService(gw, extras, nil)

	dashboard, err := svc.Dashboard(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, dashboard.Warnings, 1)
	assert.Equal(t, "announcements_unavailable", dashboard.Warnings[0].Code)
}

func TestParentDashboardProfileFailureIsFatal(t *testing.T) {
	gw := &fakeParentGateway{parentErr: appErrors.ErrUpstream}
	svc := NewParentService(gw, &fakeDashboardExtras{}, nil)

	_, err := svc.Dashboard(context.Background(), "p1")
	assert.True(t, appErrors.IsCode(err, "UPSTREAM_UNAVAILABLE"))
}

func TestParentDashboardExpiredSessionPropagates(t *testing.T) {
	gw := &fakeParentGateway{parent: &models.Parent{ParentID: "p1"}}
	extras := &fakeDashboardExtras{announcementsErr: appErrors.ErrUpstreamAuth}
	svc := NewParentService(gw, extras, nil)

	_, err := svc.Dashboard(context.Background(), "p1")
	assert.True(t, appErrors.IsCode(err, "UPSTREAM_UNAUTHORIZED"))
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type fakeMeetingGateway struct {
	meetings  []models.Meeting
	listCalls int
	requested *gateway.OneOnOneRequest
}

func (f *fakeMeetingGateway) ListParentMeetings(context.Context, string) ([]models.Meeting, error) {
	f.listCalls++
	return f.meetings, nil
}

func (f *fakeMeetingGateway) RequestOneOnOne(_ context.Context, request gateway.OneOnOneRequest) (*models.Meeting, error) {
	f.requested = &request
	return &models.Meeting{MeetingID: "m-1", Title: request.Title, Status: models.MeetingPending}, nil
}

func newMeetingService(gw *fakeMeetingGateway, children *fakeChildrenGateway) *MeetingService {
	return NewMeetingService(gw, children, NewNoticeFactory(0), nil, nil)
}

func TestMeetingsScreenBlockedWithoutApprovedChild(t *testing.T) {
	gw := &fakeMeetingGateway{meetings: []models.Meeting{{MeetingID: "m1"}}}
	children := &fakeChildrenGateway{children: []models.Student{
		{StudentID: "s1", Status: models.StudentPending},
	}}
	svc := newMeetingService(gw, children)

	screen, err := svc.Screen(context.Background(), "p1")
	require.NoError(t, err)

	assert.True(t, screen.Blocked)
	assert.Empty(t, screen.Meetings)
	assert.Zero(t, gw.listCalls)
}

func TestMeetingsScreenListsForApprovedParent(t *testing.T) {
	gw := &fakeMeetingGateway{meetings: []models.Meeting{{MeetingID: "m1", Title: "Term briefing"}}}
	children := &fakeChildrenGateway{children: []models.Student{
		{StudentID: "s1", Status: models.StudentApproved},
	}}
	svc := newMeetingService(gw, children)

	screen, err := svc.Screen(context.Background(), "p1")
	require.NoError(t, err)

	assert.False(t, screen.Blocked)
	require.Len(t, screen.Meetings, 1)
	assert.Equal(t, "Term briefing", screen.Meetings[0].Title)
}

func TestMeetingRequestStampsParentFromSession(t *testing.T) {
	gw := &fakeMeetingGateway{}
	children := &fakeChildrenGateway{children: []models.Student{
		{StudentID: "s1", Status: models.StudentApproved},
	}}
	svc := newMeetingService(gw, children)

	result, err := svc.Request(context.Background(), "p1", "Pat Example", dto.MeetingRequestForm{
		Title:         "Progress check",
		Description:   "Discuss term 2 progress",
		TeacherName:   "Ms Dlamini",
		ScheduledTime: "2026-09-10T09:00",
	})
	require.NoError(t, err)

	require.NotNil(t, gw.requested)
	assert.Equal(t, "p1", gw.requested.ParentID)
	assert.Equal(t, "Pat Example", gw.requested.ParentName)
	assert.Equal(t, "m-1", result.Meeting.MeetingID)
}

func TestMeetingRequestBlockedWithoutApprovedChild(t *testing.T) {
	gw := &fakeMeetingGateway{}
	children := &fakeChildrenGateway{children: []models.Student{
		{StudentID: "s1", Status: models.StudentRejected},
	}}
	svc := newMeetingService(gw, children)

	_, err := svc.Request(context.Background(), "p1", "Pat", dto.MeetingRequestForm{
		Title: "X", Description: "Y", TeacherName: "Z", ScheduledTime: "2026-09-10T09:00",
	})
	assert.True(t, appErrors.IsCode(err, "FORBIDDEN"))
	assert.Nil(t, gw.requested)
}

func TestMeetingRequestValidatesForm(t *testing.T) {
	svc := newMeetingService(&fakeMeetingGateway{}, &fakeChildrenGateway{})

	_, err := svc.Request(context.Background(), "p1", "Pat", dto.MeetingRequestForm{Title: "only"})
	assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
}

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// MeetingPayload is the create/update meeting payload.
type MeetingPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	ScheduledTime string `json:"scheduledTime"`
	TeacherName   string `json:"teacherName"`
	Type          string `json:"type"`
	ParentID      string `json:"parentId,omitempty"`
	ParentName    string `json:"parentName,omitempty"`
}

// OneOnOneRequest is a parent's request for a private meeting slot.
type OneOnOneRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	TeacherName   string `json:"teacherName"`
	ScheduledTime string `json:"scheduledTime"`
	ParentID      string `json:"parentId"`
	ParentName    string `json:"parentName"`
}

// ListMeetings returns all meetings.
func (c *Client) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := c.do(ctx, http.MethodGet, "/meetings", "meetings", nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListMeetingsByStatus returns meetings filtered by status (pending, approved, rejected).
func (c *Client) ListMeetingsByStatus(ctx context.Context, status string) ([]models.Meeting, error) {
	var meetings []models.Meeting
	path := fmt.Sprintf("/meetings/%s", status)
	if err := c.do(ctx, http.MethodGet, path, "meetings", nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListParentMeetings returns meetings visible to a parent: group meetings
// plus the parent's own one-on-one slots.
func (c *Client) ListParentMeetings(ctx context.Context, parentID string) ([]models.Meeting, error) {
	var meetings []models.Meeting
	path := fmt.Sprintf("/meetings/parent/%s", parentID)
	if err := c.do(ctx, http.MethodGet, path, "meetings", nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// CreateMeeting schedules a meeting.
func (c *Client) CreateMeeting(ctx context.Context, payload MeetingPayload) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := c.do(ctx, http.MethodPost, "/meetings", "meetings", payload, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// UpdateMeeting modifies a meeting.
func (c *Client) UpdateMeeting(ctx context.Context, meetingID string, payload MeetingPayload) (*models.Meeting, error) {
	var meeting models.Meeting
	path := fmt.Sprintf("/meetings/%s", meetingID)
	if err := c.do(ctx, http.MethodPut, path, "meetings", payload, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// DeleteMeeting removes a meeting.
func (c *Client) DeleteMeeting(ctx context.Context, meetingID string) error {
	path := fmt.Sprintf("/meetings/%s", meetingID)
	return c.do(ctx, http.MethodDelete, path, "meetings", nil, nil)
}

// ApproveMeeting approves a requested one-on-one slot.
func (c *Client) ApproveMeeting(ctx context.Context, meetingID string) error {
	path := fmt.Sprintf("/meetings/%s/approve", meetingID)
	return c.do(ctx, http.MethodPut, path, "meetings", nil, nil)
}

// RejectMeeting declines a requested one-on-one slot.
func (c *Client) RejectMeeting(ctx context.Context, meetingID, reason string) error {
	path := fmt.Sprintf("/meetings/%s/reject", meetingID)
	payload := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPut, path, "meetings", payload, nil)
}

// RequestOneOnOne submits a parent's private-meeting request.
func (c *Client) RequestOneOnOne(ctx context.Context, request OneOnOneRequest) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := c.do(ctx, http.MethodPost, "/meetings/request-one-on-one", "meetings", request, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

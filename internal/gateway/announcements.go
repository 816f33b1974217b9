package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// AnnouncementPayload is the create/update announcement payload.
type AnnouncementPayload struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// ListAnnouncements returns all announcements.
func (c *Client) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := c.do(ctx, http.MethodGet, "/admin/announcements", "announcements", nil, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// CreateAnnouncement publishes an announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, payload AnnouncementPayload) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := c.do(ctx, http.MethodPost, "/admin/announcements", "announcements", payload, &announcement); err != nil {
		return nil, err
	}
	return &announcement, nil
}

// UpdateAnnouncement modifies an announcement.
func (c *Client) UpdateAnnouncement(ctx context.Context, announcementID string, payload AnnouncementPayload) (*models.Announcement, error) {
	var announcement models.Announcement
	path := fmt.Sprintf("/admin/announcements/%s", announcementID)
	if err := c.do(ctx, http.MethodPut, path, "announcements", payload, &announcement); err != nil {
		return nil, err
	}
	return &announcement, nil
}

// DeleteAnnouncement removes an announcement.
func (c *Client) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	path := fmt.Sprintf("/admin/announcements/%s", announcementID)
	return c.do(ctx, http.MethodDelete, path, "announcements", nil, nil)
}

// ListDocumentRequests returns all document requests raised by parents.
func (c *Client) ListDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error) {
	var requests []models.DocumentRequest
	if err := c.do(ctx, http.MethodGet, "/admin/document-requests", "document-requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListPendingDocumentRequests returns document requests awaiting action.
func (c *Client) ListPendingDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error) {
	var requests []models.DocumentRequest
	if err := c.do(ctx, http.MethodGet, "/admin/document-requests/pending", "document-requests", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ApproveDocumentRequest marks a document request as handled.
func (c *Client) ApproveDocumentRequest(ctx context.Context, requestID string) error {
	path := fmt.Sprintf("/admin/document-requests/%s/approve", requestID)
	return c.do(ctx, http.MethodPut, path, "document-requests", nil, nil)
}

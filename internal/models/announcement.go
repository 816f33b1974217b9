package models

import "time"

// AnnouncementCategories lists the category tags the admin form offers.
var AnnouncementCategories = []string{"GENERAL", "URGENT", "EVENT", "ACADEMIC", "SPORTS"}

// Announcement is a school-wide notice authored by administrators.
type Announcement struct {
	AnnouncementID string    `json:"announcementId"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

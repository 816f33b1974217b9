package dto

import "github.com/oakfield-primary/portal-api/internal/models"

// MeetingsScreen gates the parent view on having an approved child.
type MeetingsScreen struct {
	Blocked       bool             `json:"blocked"`
	BlockedReason string           `json:"blockedReason,omitempty"`
	Meetings      []models.Meeting `json:"meetings,omitempty"`
}

// MeetingRequestForm is a parent's one-on-one meeting request.
type MeetingRequestForm struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	TeacherName   string `json:"teacherName" validate:"required"`
	ScheduledTime string `json:"scheduledTime" validate:"required"`
}

// MeetingRequestResult confirms a submitted request.
type MeetingRequestResult struct {
	Meeting models.Meeting `json:"meeting"`
	Notice  Notice         `json:"notice"`
}

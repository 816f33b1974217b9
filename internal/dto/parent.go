package dto

import "github.com/oakfield-primary/portal-api/internal/models"

// ParentDashboard is the parent landing screen.
type ParentDashboard struct {
	Parent           models.Parent         `json:"parent"`
	Children         []models.Student      `json:"children"`
	Announcements    []models.Announcement `json:"announcements"`
	UpcomingMeetings []models.Meeting      `json:"upcomingMeetings"`
	Warnings         []Warning             `json:"warnings,omitempty"`
}

// ChildrenScreen lists a parent's children.
type ChildrenScreen struct {
	Children []models.Student `json:"children"`
}

// ChildDocuments is the per-child document list opened from the children screen.
type ChildDocuments struct {
	Student   models.Student `json:"student"`
	Documents []DocumentView `json:"documents"`
}

// InlineUpload is a file the browser read and encoded before submission.
type InlineUpload struct {
	FileName     string `json:"fileName" validate:"required"`
	FileData     string `json:"fileData" validate:"required"`
	MimeType     string `json:"mimeType"`
	FileSize     int64  `json:"fileSize"`
	DocumentType string `json:"documentType"`
}

// AddChildRequest is the enrollment application form.
type AddChildRequest struct {
	Name               string `json:"name" validate:"required"`
	Surname            string `json:"surname" validate:"required"`
	Gender             string `json:"gender" validate:"required"`
	DateOfBirth        string `json:"dateOfBirth" validate:"required"`
	BirthCertificateID string `json:"birthCertificateId" validate:"required"`
	Nationality        string `json:"nationality" validate:"required"`
	Grade              string `json:"grade" validate:"required"`
	YearOfAdmission    string `json:"yearOfAdmission" validate:"required"`
	PreviousSchool     string `json:"previousSchool"`

	PreviousSchoolReport *InlineUpload `json:"previousSchoolReport"`
	IDDocument           *InlineUpload `json:"idDocument"`
	ProfileImage         *InlineUpload `json:"profileImage"`
}

// AddChildResult preserves the created student even when uploads fail.
type AddChildResult struct {
	Student  models.Student `json:"student"`
	Warnings []Warning      `json:"warnings,omitempty"`
	Notice   Notice         `json:"notice"`
}

// UpdateChildRequest edits an application that has not been approved yet.
type UpdateChildRequest struct {
	Name               string `json:"name" validate:"required"`
	Surname            string `json:"surname" validate:"required"`
	Gender             string `json:"gender" validate:"required"`
	DateOfBirth        string `json:"dateOfBirth" validate:"required"`
	BirthCertificateID string `json:"birthCertificateId" validate:"required"`
	Nationality        string `json:"nationality" validate:"required"`
	Grade              string `json:"grade" validate:"required"`
	YearOfAdmission    string `json:"yearOfAdmission" validate:"required"`
	PreviousSchool     string `json:"previousSchool"`
}

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// ChildPayload is the add/update child application payload.
type ChildPayload struct {
	Name               string `json:"name"`
	Surname            string `json:"surname"`
	Gender             string `json:"gender"`
	DateOfBirth        string `json:"dateOfBirth"`
	BirthCertificateID string `json:"birthCertificateId"`
	Nationality        string `json:"nationality"`
	Grade              string `json:"grade"`
	YearOfAdmission    int    `json:"yearOfAdmission"`
	PreviousSchool     string `json:"previousSchool,omitempty"`
}

// DocumentRequestPayload asks the school to act on a document need.
type DocumentRequestPayload struct {
	StudentID    string `json:"studentId,omitempty"`
	DocumentType string `json:"documentType"`
	Message      string `json:"message,omitempty"`
}

// GetParent loads a parent profile.
func (c *Client) GetParent(ctx context.Context, parentID string) (*models.Parent, error) {
	var parent models.Parent
	path := fmt.Sprintf("/parents/%s", parentID)
	if err := c.do(ctx, http.MethodGet, path, "parents", nil, &parent); err != nil {
		return nil, err
	}
	return &parent, nil
}

// ListChildren returns the parent's student applications.
func (c *Client) ListChildren(ctx context.Context, parentID string) ([]models.Student, error) {
	var children []models.Student
	path := fmt.Sprintf("/parents/%s/children", parentID)
	if err := c.do(ctx, http.MethodGet, path, "parents", nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// AddChild submits a new student application for the parent.
func (c *Client) AddChild(ctx context.Context, parentID string, payload ChildPayload) (*models.Student, error) {
	var student models.Student
	path := fmt.Sprintf("/parents/%s/children", parentID)
	if err := c.do(ctx, http.MethodPost, path, "parents", payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateChild modifies an existing student application.
func (c *Client) UpdateChild(ctx context.Context, parentID, studentID string, payload ChildPayload) (*models.Student, error) {
	var student models.Student
	path := fmt.Sprintf("/parents/%s/children/%s", parentID, studentID)
	if err := c.do(ctx, http.MethodPut, path, "parents", payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateDocumentRequest files a document request on behalf of the parent.
func (c *Client) CreateDocumentRequest(ctx context.Context, parentID string, payload DocumentRequestPayload) (*models.DocumentRequest, error) {
	var request models.DocumentRequest
	path := fmt.Sprintf("/parents/%s/document-requests", parentID)
	if err := c.do(ctx, http.MethodPost, path, "parents", payload, &request); err != nil {
		return nil, err
	}
	return &request, nil
}
